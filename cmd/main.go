package main

import "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/shell"

func main() {
	shell.Execute()
}
