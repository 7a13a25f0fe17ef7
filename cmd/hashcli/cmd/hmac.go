package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"
	"massnet.org/hashcore/errors"
	"massnet.org/hashcore/hmac"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/sha256"
)

type hmacFlags struct {
	key       string
	keyHex    bool
	keyPrompt bool
	verify    string
}

func (a *app) newHmacCmd() *cobra.Command {
	f := new(hmacFlags)
	cmd := &cobra.Command{
		Use:   "hmac <message>",
		Short: "Prints the HMAC-SHA256 tag of a message",
		Long: "Prints the HMAC-SHA256 tag of <message> under --key. With --verify the given hex tag is\n" +
			"checked instead and the command fails when it does not match.",
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.VPrint(logging.INFO, "hmac called", logging.LogFormat{"key_hex": f.keyHex, "verify": f.verify != ""})

			key, err := f.decodeKey(cmd.Flags(), a.readSecret)
			if err != nil {
				return err
			}
			msg := []byte(args[0])

			if f.verify == "" {
				fmt.Fprintln(cmd.OutOrStdout(), hmac.Sum(key, msg))
				return nil
			}

			tag, err := sha256.DecodeStringToDigest(f.verify)
			if err != nil {
				logging.VPrint(logging.ERROR, "invalid tag", logging.LogFormat{"tag": f.verify, "err": err})
				return errors.New(errors.ErrCLIDecodeHexString, err)
			}
			if !hmac.Verify(key, msg, tag) {
				fmt.Fprintln(cmd.OutOrStdout(), "FAILED")
				return errors.New(errors.ErrCLITagMismatch, nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (f *hmacFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.key, "key", "k", "", "secret key")
	fs.BoolVar(&f.keyHex, "key-hex", false, "decode --key as hex")
	fs.BoolVar(&f.keyPrompt, "key-prompt", false, "read the key from the terminal without echo")
	fs.StringVar(&f.verify, "verify", "", "hex tag to verify instead of printing the tag")
}

// decodeKey returns the key bytes. An explicitly empty --key is a valid
// key, an absent one is not.
func (f *hmacFlags) decodeKey(fs *pflag.FlagSet, readSecret func(string) ([]byte, error)) ([]byte, error) {
	raw := f.key
	switch {
	case f.keyPrompt && fs.Changed("key"):
		return nil, errors.New(errors.ErrCLIInvalidParameter, pkgerrors.New("--key and --key-prompt are exclusive"))
	case f.keyPrompt:
		secret, err := readSecret("Enter HMAC key:")
		if err != nil {
			return nil, errors.New(errors.ErrCLIReadInput, pkgerrors.Wrap(err, "read key"))
		}
		raw = string(secret)
	case !fs.Changed("key"):
		return nil, errors.New(errors.ErrCLIMissingKey, nil)
	}

	if !f.keyHex {
		return []byte(raw), nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		logging.VPrint(logging.ERROR, "invalid hex key", logging.LogFormat{"err": err})
		return nil, errors.New(errors.ErrCLIDecodeHexString, err)
	}
	return key, nil
}

// promptSecret prints prompt and reads one line from the terminal without
// echoing it.
func promptSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return secret, err
}
