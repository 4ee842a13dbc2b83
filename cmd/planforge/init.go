package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/crew"
)

var (
	initForce      bool
	initWithBrief  bool
	initNoDefaults bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a planforge project",
	Long: `Initialize a directory for use with planforge.

This command sets up everything needed to run the planning crew:
  - Verifies an API key is available for the configured provider
  - Creates the .planforge directory structure (logs, signals)
  - Writes the default agent and task registries to config/
  - Creates a .planforge.yaml template and an example project brief

The directory argument is optional and defaults to the current directory.

Examples:
  planforge init               # Initialize current directory
  planforge init ./myproject   # Initialize specific directory
  planforge init --force       # Reinitialize even if already set up
  planforge init --no-defaults # Skip writing config/agents.yaml and config/tasks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if already set up")
	initCmd.Flags().BoolVar(&initWithBrief, "with-brief", true, "Create an example brief.yaml")
	initCmd.Flags().BoolVar(&initNoDefaults, "no-defaults", false, "Skip writing the default agent and task registries")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Printf("Initializing planforge in %s...\n\n", absPath)

	planforgeDir := filepath.Join(absPath, ".planforge")
	if _, err := os.Stat(planforgeDir); err == nil && !initForce {
		fmt.Println("Directory already initialized. Use --force to reinitialize.")
		return nil
	}

	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	switch {
	case anthropicKey != "":
		printStatus("✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	case openaiKey != "":
		printStatus("✓", "OPENAI_API_KEY is set", color.FgGreen)
	default:
		printStatus("⚠", "No API key found (set ANTHROPIC_API_KEY or OPENAI_API_KEY later)", color.FgYellow)
	}

	for _, sub := range []string{"logs", "signals"} {
		if err := os.MkdirAll(filepath.Join(planforgeDir, sub), 0755); err != nil {
			return fmt.Errorf("creating .planforge/%s directory: %w", sub, err)
		}
	}
	printStatus("✓", "Created .planforge directory structure", color.FgGreen)

	if !initNoDefaults {
		agentsPath := filepath.Join(absPath, "config", "agents.yaml")
		tasksPath := filepath.Join(absPath, "config", "tasks.yaml")
		if err := crew.WriteDefaults(agentsPath, tasksPath); err != nil {
			return fmt.Errorf("writing default registries: %w", err)
		}
		printStatus("✓", "Wrote config/agents.yaml and config/tasks.yaml", color.FgGreen)
	}

	configPath := filepath.Join(absPath, ".planforge.yaml")
	if err := writeIfAbsent(configPath, projectConfigTemplate, initForce); err != nil {
		return fmt.Errorf("creating .planforge.yaml: %w", err)
	}
	printStatus("✓", "Created .planforge.yaml template", color.FgGreen)

	if initWithBrief {
		briefPath := filepath.Join(absPath, "brief.yaml")
		if err := writeIfAbsent(briefPath, exampleBrief, initForce); err != nil {
			return fmt.Errorf("creating brief.yaml: %w", err)
		}
		printStatus("✓", "Created example brief.yaml", color.FgGreen)
	}

	fmt.Printf("\n%s planforge initialization complete!\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	if anthropicKey == "" && openaiKey == "" {
		fmt.Println("  1. Set your API key:")
		fmt.Println("     export ANTHROPIC_API_KEY=your-key-here")
		fmt.Println()
	}
	fmt.Println("  2. Edit brief.yaml with your project details")
	fmt.Println()
	fmt.Println("  3. Run the planning crew:")
	fmt.Println("     planforge run --brief brief.yaml")
	fmt.Println()

	return nil
}

// writeIfAbsent writes content to path unless the file already exists.
// With force set, existing files are overwritten.
func writeIfAbsent(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

const projectConfigTemplate = `# planforge project configuration
# Values here override ~/.config/planforge/config.yaml.

provider: anthropic # anthropic, bedrock, or openai

anthropic:
  model: claude-sonnet-4-20250514

# openai:
#   model: gpt-4o
#   base_url: ""

# aws:
#   region: us-east-1
#   profile: default

crew:
  agents_file: config/agents.yaml
  tasks_file: config/tasks.yaml
  max_tokens: 8192
  task_timeout: 10m

outputs:
  metrics_dir: outputs/metrics
`

const exampleBrief = `# Example project brief. Edit to describe your project, then run:
#   planforge run --brief brief.yaml
project: Website
industry: Technology
project_objectives: Create a website for a small business
team_members:
  - John Doe (Project Manager)
  - Jane Doe (Software Engineer)
  - Bob Smith (Designer)
  - Alice Johnson (QA Engineer)
  - Tom Brown (QA Engineer)
project_requirements:
  - Create a responsive design that works well on desktop and mobile devices
  - Implement a modern, visually appealing user interface with a clean look
  - Develop a user-friendly navigation system with intuitive menu structure
  - Include an "About Us" page highlighting the company's history and values
  - Design a "Services" page showcasing the business's offerings with descriptions
  - Create a "Contact Us" page with a form and integrated map for communication
  - Implement a blog section for sharing industry news and company updates
  - Ensure fast loading times and optimize for search engines (SEO)
  - Integrate social media links and sharing capabilities
  - Include a testimonials section to showcase customer feedback and build trust
`
