package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/frozendustbunny/Magic4/analyze"
	"github.com/frozendustbunny/Magic4/astjson"
)

// check: semantic analysis over one parsed program
var CheckCmd = &cobra.Command{
	Use:   "check [ast.json] [out.mini]",
	Short: "Run name and type analysis over a syntax tree document",
	Long: `check decodes the parser's syntax tree document, runs name analysis
and then type analysis over it, and on success writes the annotated
program back out as Mini source. Diagnostics go to standard error; a
program with errors produces no output file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0], args[1])
	},
}

func runCheck(inpath, outpath string) error {
	in, err := os.Open(inpath)
	if err != nil {
		return err
	}
	defer in.Close()

	prog, err := astjson.Decode(in)
	if err != nil {
		return err
	}
	if debugDump {
		spew.Fdump(os.Stderr, prog)
	}

	a := analyze.New(inpath)
	diags := a.Analyze(prog)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d)
	}
	if len(diags) > 0 {
		return fmt.Errorf("%s: %d errors, not writing output", inpath, len(diags))
	}

	out, err := os.Create(outpath)
	if err != nil {
		return err
	}
	defer out.Close()
	prog.Unparse(out, 0)
	return nil
}
