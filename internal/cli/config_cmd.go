package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/config"
	"github.com/aidanlsb/vaultmend/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vaultmend configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("config at %s", path))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.DefaultPath())
		return nil
	},
}

var configVaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List configured vaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		vaults := c.ListVaults()
		if len(vaults) == 0 {
			fmt.Println(ui.Hint("no vaults configured; run 'vmd config init'"))
			return nil
		}

		names := make([]string, 0, len(vaults))
		for name := range vaults {
			names = append(names, name)
		}
		sort.Strings(names)

		tbl := ui.NewTable(3)
		for _, name := range names {
			marker := " "
			if name == c.DefaultVault {
				marker = "*"
			}
			tbl.AddRow(marker, name, vaults[name])
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var configAddVaultCmd = &cobra.Command{
	Use:   "add-vault <name> <path>",
	Short: "Add a vault to the config",
	Long: `Register a vault under a name. The path must be an existing
directory; the first vault added becomes the default.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")

		path := resolveConfigFile()
		c, err := loadConfigFile(path)
		if err != nil {
			return err
		}

		absPath, existed, err := addVault(c, args[0], args[1], replace)
		if err != nil {
			return err
		}
		if err := config.SaveTo(path, c); err != nil {
			return err
		}

		if existed {
			fmt.Println(ui.Successf("updated vault '%s' -> %s", strings.TrimSpace(args[0]), absPath))
		} else {
			fmt.Println(ui.Successf("added vault '%s' -> %s", strings.TrimSpace(args[0]), absPath))
		}
		if c.DefaultVault == strings.TrimSpace(args[0]) {
			fmt.Printf("default vault: %s\n", c.DefaultVault)
		}
		fmt.Printf("config: %s\n", ui.FilePath(path))
		return nil
	},
}

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigFile()
		c, err := loadConfigFile(path)
		if err != nil {
			return err
		}

		vaultPath, err := setDefaultVault(c, args[0])
		if err != nil {
			return err
		}
		if err := config.SaveTo(path, c); err != nil {
			return err
		}

		fmt.Println(ui.Successf("default vault set to '%s' -> %s", strings.TrimSpace(args[0]), vaultPath))
		fmt.Printf("config: %s\n", ui.FilePath(path))
		return nil
	},
}

// resolveConfigFile returns the path config mutations read and write back,
// honoring the --config flag.
func resolveConfigFile() string {
	if p := strings.TrimSpace(configPath); p != "" {
		return p
	}
	return config.DefaultPath()
}

// loadConfigFile loads a config for mutation. A missing file starts empty
// rather than erroring, so add-vault works before 'config init'.
func loadConfigFile(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &config.Config{}, nil
	}
	return config.LoadFrom(path)
}

// addVault registers name -> path in the config. The path must be an
// existing directory. The first vault added becomes the default; replacing
// an existing entry requires replace.
func addVault(c *config.Config, name, rawPath string, replace bool) (absPath string, existed bool, err error) {
	name = strings.TrimSpace(name)
	rawPath = strings.TrimSpace(rawPath)
	if name == "" {
		return "", false, fmt.Errorf("vault name is required")
	}
	if rawPath == "" {
		return "", false, fmt.Errorf("vault path is required")
	}

	absPath, err = filepath.Abs(rawPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", false, fmt.Errorf("vault path: %w", err)
	}
	if !info.IsDir() {
		return "", false, fmt.Errorf("vault path must be a directory: %s", absPath)
	}

	_, existed = c.Vaults[name]
	if existed && !replace {
		return "", true, fmt.Errorf("vault '%s' already exists; use --replace to update the path", name)
	}

	if c.Vaults == nil {
		c.Vaults = make(map[string]string)
	}
	c.Vaults[name] = absPath
	if c.DefaultVault == "" {
		c.DefaultVault = name
	}
	return absPath, existed, nil
}

// setDefaultVault points DefaultVault at an already-registered vault.
func setDefaultVault(c *config.Config, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("vault name is required")
	}
	path, ok := c.Vaults[name]
	if !ok {
		return "", fmt.Errorf("vault '%s' not found in config; run 'vmd config vaults'", name)
	}
	c.DefaultVault = name
	return path, nil
}

func init() {
	configAddVaultCmd.Flags().Bool("replace", false, "Update the path of an existing vault")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configVaultsCmd)
	configCmd.AddCommand(configAddVaultCmd)
	configCmd.AddCommand(configSetDefaultCmd)
	rootCmd.AddCommand(configCmd)
}
