package cmd

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"massnet.org/hashcore/errors"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/merkle"
	"massnet.org/hashcore/sha256"
)

type merkleFlags struct {
	layers    bool
	cacheSize int
}

func (a *app) newMerkleCmd() *cobra.Command {
	f := new(merkleFlags)
	cmd := &cobra.Command{
		Use:   "merkle <hex-digest>...",
		Short: "Prints the Merkle root of 32-byte items",
		Long: "Prints the Merkle root of the given 32-byte items, each written as 64 hex characters.\n" +
			"With --layers every layer is printed, leaves first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.VPrint(logging.INFO, "merkle called", logging.LogFormat{"items": len(args), "layers": f.layers})

			items, err := decodeItems(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if f.layers {
				layers, err := merkle.Layers(items)
				if err != nil {
					return errors.New(errors.ErrCLIEmptyMerkleItems, err)
				}
				for i, layer := range layers {
					for j, node := range layer {
						fmt.Fprintf(out, "%d %d %s\n", i, j, node)
					}
				}
				return nil
			}

			b, err := merkle.NewBuilder(merkle.WithWorkers(a.config.Workers), merkle.WithLeafCache(f.cacheSize))
			if err != nil {
				return errors.New(errors.ErrCLIWorkerPool, err)
			}
			defer b.Release()

			root, err := b.Root(items)
			if err != nil {
				return errors.New(errors.ErrCLIWorkerPool, pkgerrors.Wrap(err, "build merkle root"))
			}
			fmt.Fprintln(out, root)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (f *merkleFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.layers, "layers", false, "print every layer of the tree")
	fs.IntVar(&f.cacheSize, "cache", 0, "memoize up to this many leaf hashes, 0 disables the cache")
}

func decodeItems(args []string) ([]sha256.Digest, error) {
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCLIEmptyMerkleItems, merkle.ErrEmptyItems)
	}
	items := make([]sha256.Digest, len(args))
	for i, arg := range args {
		d, err := sha256.DecodeStringToDigest(arg)
		if err == sha256.ErrInvalidDigestLength {
			logging.VPrint(logging.ERROR, "invalid item length", logging.LogFormat{"index": i, "item": arg})
			return nil, errors.New(errors.ErrCLIDigestLength, pkgerrors.Wrapf(err, "item %d", i))
		}
		if err != nil {
			logging.VPrint(logging.ERROR, "invalid item hex", logging.LogFormat{"index": i, "item": arg})
			return nil, errors.New(errors.ErrCLIDecodeHexString, pkgerrors.Wrapf(err, "item %d", i))
		}
		items[i] = d
	}
	return items, nil
}
