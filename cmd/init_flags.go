package cmd

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for the new project configuration file
	initCmd.Flags().String("out", "", "output path for the new project configuration file")
	return nil
}
