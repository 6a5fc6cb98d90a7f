/*
Package cli provides command-line helpers shared by the rustalize commands.

Output Formatting:

Results print as text, JSON, or YAML:

	format, err := cli.ParseOutputFormat(flag, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, result)

Text output prints values implementing Liner one line at a time.

Progress Reporting:

Indexing reports per-file progress. NewTerminalProgress draws a bar only
when stderr is a terminal:

	progress := cli.NewTerminalProgress(os.Stderr)
	progress.Start(int64(len(files)))

Exit Codes:

Commands return *CommandError values; ExitCode maps them to 0 (ok),
1 (invalid declarations found), or 2 (failure).

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
