package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skillport/internal/construct"
	"skillport/internal/detect"
	"skillport/internal/frontmatter"
)

var analyzeYAML bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Show the constructs detected in a document body",
	Long: `Runs only the detection engine and prints the resulting content
analysis: every platform construct found in the document body, with
its location, extracted values, and nesting. Useful for checking what
a conversion would touch before running it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeYAML, "yaml", false, "emit the analysis as YAML")
}

// constructView is the YAML projection of a detected construct.
type constructView struct {
	Kind     string            `yaml:"kind"`
	Platform string            `yaml:"platform"`
	Line     int               `yaml:"line"`
	Start    int               `yaml:"start"`
	End      int               `yaml:"end"`
	Raw      string            `yaml:"raw"`
	Values   map[string]string `yaml:"values,omitempty"`
	Children []constructView   `yaml:"children,omitempty"`
}

func viewOf(c *construct.Construct) constructView {
	v := constructView{
		Kind:     string(c.Kind),
		Platform: string(c.Platform),
		Line:     c.Span.Line,
		Start:    c.Span.Start,
		End:      c.Span.End,
		Raw:      c.Raw,
		Values:   c.Values,
	}
	for _, ch := range c.Children {
		v.Children = append(v.Children, viewOf(ch))
	}
	return v
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	_, body, _ := frontmatter.Split(string(data))
	analysis := detect.Analyze(body)

	if analyzeYAML {
		views := make([]constructView, 0, len(analysis.Constructs))
		for _, c := range analysis.Constructs {
			views = append(views, viewOf(c))
		}
		out, err := yaml.Marshal(views)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d construct(s)", args[0], analysis.Count())))
	printConstructs(analysis.Constructs, 0)
	return nil
}

func printConstructs(cs []*construct.Construct, depth int) {
	indent := strings.Repeat("  ", depth+1)
	for _, c := range cs {
		snippet := c.Raw
		if len(snippet) > 60 {
			snippet = snippet[:57] + "..."
		}
		fmt.Printf("%sL%-4d %s %s %q\n",
			indent, c.Span.Line,
			okStyle.Render(string(c.Kind)),
			dimStyle.Render("("+string(c.Platform)+")"),
			snippet,
		)
		printConstructs(c.Children, depth+1)
	}
}
