package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"kiki/internal/config"
	"kiki/internal/logger"
	"kiki/internal/singbox"
	"kiki/internal/singbox/parser"

	"github.com/spf13/cobra"
)

var setDryRun bool

var setCmd = &cobra.Command{
	Use:   "set <link|->",
	Short: "Replace the \"proxy\" outbound with the server from a share link",
	Long: `Decodes an ss://, vmess://, trojan://, vless://, hy2://, hysteria2:// or anytls:// link
and rewrites the outbound tagged "proxy" in the sing-box config. Everything else in the
file is left as it was.

Pass "-" to read from stdin; the first supported link found in the text is used.
Restart the service afterwards for sing-box to pick up the change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		raw, err := readLink(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return runSet(cfg, raw, setDryRun, cmd.OutOrStdout())
	},
}

func readLink(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	links := singbox.ExtractLinks(string(data))
	if len(links) == 0 {
		return "", errors.New("no supported link found on stdin")
	}
	if len(links) > 1 {
		logger.Log.Warnf("Found %d links on stdin, using the first", len(links))
	}
	return links[0], nil
}

// runSet decodes raw and either prints the outbound (dryRun) or writes it
// into the configured sing-box document. A bad link never reaches the store.
func runSet(cfg *config.Config, raw string, dryRun bool, out io.Writer) error {
	ep, err := parser.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	server, port := ep.Address()
	addr := net.JoinHostPort(server, strconv.Itoa(int(port)))
	logger.Log.Debugf("Decoded %s endpoint %s", ep.Scheme(), addr)

	if dryRun {
		preview, err := singbox.Preview(ep)
		if err != nil {
			return err
		}
		_, err = out.Write(preview)
		return err
	}

	store := singbox.NewStore(cfg.SingBox.ConfigPath)
	result, err := singbox.UpdateProxySlot(store, ep, cfg.Merge.MissingSlot)
	if err != nil {
		return err
	}

	switch result {
	case singbox.SlotMissing:
		logger.Log.Warnf("⚠️ No outbound tagged %q in %s, nothing was replaced", singbox.ProxyTag, store.Path)
	case singbox.SlotAppended:
		logger.Log.Infof("✅ Appended %s outbound %s to %s", ep.Scheme(), addr, store.Path)
	default:
		logger.Log.Infof("✅ Proxy outbound set to %s %s in %s", ep.Scheme(), addr, store.Path)
	}
	return nil
}

func init() {
	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Print the generated outbound instead of writing it")
	rootCmd.AddCommand(setCmd)
}
