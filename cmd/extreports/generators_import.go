package main

// Blank imports ensure generator init() registration runs for the CLI binary.
import (
	_ "github.com/alexisbeaulieu97/extreports/internal/generators/outcomeindex"
	_ "github.com/alexisbeaulieu97/extreports/internal/generators/singlepagehtml"
)
