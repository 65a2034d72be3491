package cli

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSMSCmd() *cobra.Command {
	var from, sid, path string
	var noSID, noBody bool

	cmd := &cobra.Command{
		Use:   "sms [text...]",
		Short: "Simulate an inbound text and print the reply",
		Example: `  huntctl sms --from +15551234567 hello
  huntctl sms --from +15551234567 boygeorge`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return fmt.Errorf("--from is required")
			}

			form := url.Values{"From": {from}}
			if !noBody {
				form.Set("Body", strings.Join(args, " "))
			}
			if !noSID {
				if sid == "" {
					sid = fmt.Sprintf("SMhuntctl%d", time.Now().UnixNano())
				}
				form.Set("SmsSid", sid)
			}

			reply, err := client.SendSMS(path, form)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Sender phone number (required)")
	cmd.Flags().StringVar(&sid, "sid", "", "Message session id (default: generated)")
	cmd.Flags().StringVar(&path, "path", "/sms", "Webhook path")
	cmd.Flags().BoolVar(&noSID, "no-sid", false, "Omit the session id, as a status callback would")
	cmd.Flags().BoolVar(&noBody, "no-body", false, "Omit the Body field entirely")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
