package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictacgo/internal/config"
)

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show version, storage location and the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := cfg.AppConfig()
			if err != nil {
				return err
			}

			info := AboutInfo{
				Name:     "tictac",
				Version:  Version,
				Storage:  appCfg.Storage,
				Identity: string(app.Session.Current()),
			}
			switch appCfg.Storage {
			case config.StorageSQLite:
				info.Location = appCfg.SQLitePath
			case config.StorageRedis:
				info.Location = redactURL(appCfg.RedisURL)
			}

			out.Print(info)
			return nil
		},
	}
}

// redactURL hides any password in a connection URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
