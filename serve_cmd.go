package main

import (
	"fmt"

	"github.com/dgnsrekt/audiooverview/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve narration over HTTP",
	Long:    paragraph(fmt.Sprintf("\n%s an HTTP API: POST a script and voices to /narrate and get MP3 back.", keyword("Run"))),
	Example: paragraph("audiooverview serve --addr :8080\naudiooverview serve --engine tone"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logToStderr()

		_, synth, codec, err := newEngine()
		if err != nil {
			return err
		}
		defer synth.Close() //nolint:errcheck

		srv, err := server.New(server.Config{
			Synth:         synth,
			Codec:         codec,
			BodyLimit:     viper.GetInt("serve.body_limit"),
			CacheCapacity: cacheCapacity(),
			ReadTimeout:   viper.GetDuration("serve.read_timeout"),
			WriteTimeout:  viper.GetDuration("serve.write_timeout"),
		})
		if err != nil {
			return err
		}
		return srv.Listen(cmd.Context(), viper.GetString("serve.addr"))
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func cacheCapacity() int64 {
	if viper.GetBool("cache.disabled") {
		return -1
	}
	return viper.GetInt64("cache.capacity")
}
