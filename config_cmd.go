package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# speech engine: openai or tone (offline test tones)
engine: "openai"
# MP3 codec: native (pure Go) or ffmpeg
codec: "native"
# where the narration is written ("-" for stdout)
output: "script_output.mp3"

# default voices per speaker as Name=voice; --voice flags take precedence
# voices:
#   - "Alice=nova"
#   - "Bob=onyx"

openai:
  # api_key and base_url are usually taken from OPENAI_API_KEY and
  # OPENAI_BASE_URL
  # api_key: "sk-..."
  # base_url: "https://api.openai.com/v1"
  model: "tts-1"
  # 0.25 to 4.0
  speed: 1.0
  timeout: "90s"
  requests_per_minute: 50

tone:
  sample_rate: 24000
  words_per_minute: 150
  min_duration: "300ms"

ffmpeg:
  binary: "ffmpeg"
  timeout: "30s"

mp3:
  # kbps, used by the ffmpeg codec
  bitrate: 128

# repeated lines with the same voice are synthesized once per narration
cache:
  disabled: false
  # bytes of encoded audio kept per narration
  capacity: 67108864

serve:
  addr: ":8080"
  # request body limit in bytes
  body_limit: 1048576
  read_timeout: "30s"
  # narration of long scripts can take minutes
  write_timeout: "0s"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the audiooverview config file",
	Long:    paragraph(fmt.Sprintf("\n%s the audiooverview config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("audiooverview config\naudiooverview config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("audiooverview", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
