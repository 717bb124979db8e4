package port

type HelpCatalog interface {
	// Usage returns the long-form usage text of a command token.
	Usage(command string) (string, bool)
}
