package bmeta

import "fmt"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Print Распечатывает версию, дату и комит сборки.
func Print(version, date, commit string) {
	if version == "" {
		version = defaultBuildMeta
	}
	if date == "" {
		date = defaultBuildMeta
	}
	if commit == "" {
		commit = defaultBuildMeta
	}

	fmt.Printf("Build version: %s\n", version) //nolint:forbidigo
	fmt.Printf("Build date: %s\n", date)       //nolint:forbidigo
	fmt.Printf("Build commit: %s\n", commit)   //nolint:forbidigo
}
