package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/app"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/observability"
)

// Session is one interactive run of the menus over the four components.
type Session struct {
	aggs    app.Aggregates
	metrics *observability.Metrics
	prompt  Prompter
	out     *Printer
}

func NewSession(aggs app.Aggregates, metrics *observability.Metrics, prompt Prompter, out *Printer) *Session {
	return &Session{aggs: aggs, metrics: metrics, prompt: prompt, out: out}
}

type action struct {
	label string
	run   func(ctx context.Context) error
}

// Run shows the main menu until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	err := s.loop(ctx, "Main Menu", []action{
		{"Manage Customers", s.customersMenu},
		{"Manage Products", s.productsMenu},
		{"Manage Orders", s.ordersMenu},
		{"Manage Payments", s.paymentsMenu},
		{"Statistics", s.showStats},
	}, "Exit")
	if errors.Is(err, ErrQuit) {
		err = nil
	}
	if err == nil {
		s.out.Info("Goodbye.")
	}
	return err
}

// loop repeats a menu until the back option is chosen. Component errors are
// printed and the menu continues; prompt failures end the loop.
func (s *Session) loop(ctx context.Context, title string, actions []action, back string) error {
	options := make([]string, 0, len(actions)+1)
	for _, a := range actions {
		options = append(options, a.label)
	}
	options = append(options, back)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := s.prompt.Choose(title, options)
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(actions) {
			return nil
		}
		if err := s.settle(actions[choice].run(ctx)); err != nil {
			return err
		}
	}
}

// settle prints a component error and swallows it. Anything else is returned.
func (s *Session) settle(err error) error {
	if err == nil {
		return nil
	}
	if domainagg.CodeOf(err) == "" {
		return err
	}
	s.out.Fail(err)
	return nil
}

// askAll prompts each label in order.
func (s *Session) askAll(labels ...string) ([]string, error) {
	out := make([]string, len(labels))
	for i, label := range labels {
		v, err := s.prompt.Ask(label)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// askDefault prompts label and falls back to current on a blank answer.
func (s *Session) askDefault(label, current string) (string, error) {
	v, err := s.prompt.Ask(label + " [" + current + "]")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return current, nil
	}
	return v, nil
}
