package cmd

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"massnet.org/hashcore/errors"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/sha256"
	"massnet.org/hashcore/worker"
)

const stdinLabel = "-"

// hashInput is one message to hash and the label it is printed with.
type hashInput struct {
	label string
	data  []byte
}

type hashFlags struct {
	hex    bool
	double bool
	files  []string
}

func (a *app) newHashCmd() *cobra.Command {
	f := new(hashFlags)
	cmd := &cobra.Command{
		Use:   "hash [text...]",
		Short: "Prints the SHA-256 digest of each argument or file",
		Long: "Prints the SHA-256 digest of each text argument and each --file, one line per input in the order\n" +
			"they were given. Standard input is hashed when no input is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.VPrint(logging.INFO, "hash called", logging.LogFormat{
				"args": len(args), "files": len(f.files), "hex": f.hex, "double": f.double,
			})

			inputs, err := a.loadHashInputs(f, args)
			if err != nil {
				return err
			}
			digests, err := hashAll(a.config.Workers, inputs, f.double)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, d := range digests {
				fmt.Fprintf(out, "%s  %s\n", d, inputs[i].label)
			}
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (f *hashFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.hex, "hex", false, "decode text arguments as hex before hashing")
	fs.BoolVar(&f.double, "double", false, "apply SHA-256 twice")
	fs.StringSliceVarP(&f.files, "file", "f", nil, "hash the content of a file, may be repeated")
}

func (a *app) loadHashInputs(f *hashFlags, args []string) ([]hashInput, error) {
	inputs := make([]hashInput, 0, len(args)+len(f.files))
	for _, arg := range args {
		data := []byte(arg)
		if f.hex {
			var err error
			if data, err = hex.DecodeString(arg); err != nil {
				logging.VPrint(logging.ERROR, "invalid hex argument", logging.LogFormat{"arg": arg, "err": err})
				return nil, errors.New(errors.ErrCLIDecodeHexString, err)
			}
		}
		inputs = append(inputs, hashInput{label: arg, data: data})
	}

	for _, name := range f.files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			logging.VPrint(logging.ERROR, "fail to read file", logging.LogFormat{"file": name, "err": err})
			return nil, errors.New(errors.ErrCLIReadInput, err)
		}
		inputs = append(inputs, hashInput{label: name, data: data})
	}

	if len(inputs) == 0 {
		data, err := ioutil.ReadAll(a.in)
		if err != nil {
			return nil, errors.New(errors.ErrCLIReadInput, pkgerrors.Wrap(err, "read stdin"))
		}
		inputs = append(inputs, hashInput{label: stdinLabel, data: data})
	}
	return inputs, nil
}

// hashAll hashes inputs on a pool of the given size. The result at index i
// always belongs to inputs[i].
func hashAll(workers int, inputs []hashInput, double bool) ([]sha256.Digest, error) {
	sum := sha256.Sum256
	if double {
		sum = sha256.DoubleSum256
	}

	digests := make([]sha256.Digest, len(inputs))
	if len(inputs) == 1 {
		digests[0] = sum(inputs[0].data)
		return digests, nil
	}

	pool, err := worker.New(workers)
	if err != nil {
		return nil, errors.New(errors.ErrCLIWorkerPool, err)
	}
	defer pool.Release()

	if err = pool.Map(len(inputs), func(i int) {
		digests[i] = sum(inputs[i].data)
	}); err != nil {
		return nil, errors.New(errors.ErrCLIWorkerPool, pkgerrors.Wrap(err, "hash inputs"))
	}
	return digests, nil
}
