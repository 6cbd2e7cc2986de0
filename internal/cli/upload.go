package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisagrams/mstransfer/internal/client"
	"github.com/chrisagrams/mstransfer/internal/codec"
	"github.com/chrisagrams/mstransfer/internal/config"
	"github.com/chrisagrams/mstransfer/internal/constants"
	mshttp "github.com/chrisagrams/mstransfer/internal/http"
	"github.com/chrisagrams/mstransfer/internal/progress"
	"github.com/chrisagrams/mstransfer/internal/resources"
)

func newUploadCmd() *cobra.Command {
	var parallel int
	var recursive bool
	var chunkSize int
	var codecBinary string
	var proxyMode string

	cmd := &cobra.Command{
		Use:   "upload <target> <path>...",
		Short: "Send one or more mzML/msz files to an mstransfer receiver",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, port, err := ParseTarget(args[0])
			if err != nil {
				return err
			}

			paths, warnings, err := client.ResolveInputs(args[1:], recursive)
			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, w)
			}
			if err != nil {
				return err
			}

			if parallel < constants.MinParallel {
				parallel = resources.NewManager(resources.Config{}).Size()
			}
			if parallel > constants.MaxParallel {
				parallel = constants.MaxParallel
			}

			clientCfg := config.ClientConfig{ProxyMode: proxyMode}
			httpClient, err := mshttp.CreateOptimizedClient(clientCfg)
			if err != nil {
				return fmt.Errorf("configure http client: %w", err)
			}

			adapter := codec.NewProcessAdapter(codecBinary)
			ui := progress.NewUploadUI(len(paths))
			defer ui.Wait()

			opts := client.SendOptions{
				Host:           host,
				Port:           port,
				ChunkSize:      chunkSize,
				RequestTimeout: constants.UploadRequestTimeout,
				PollInterval:   constants.PollInterval,
				PollTimeout:    constants.PollNoProgressTimeout,
			}

			bars := make([]progress.FileBarHandle, len(paths))
			sizes := make([]int64, len(paths))
			received := make([]int64, len(paths))
			listener := &client.ProgressListener{
				FileStarted: func(index int, path string, totalBytes int64, known bool) {
					size := totalBytes
					if !known {
						size = 0
					}
					sizes[index] = size
					bars[index] = ui.AddFileBar(path, args[0], size)
				},
				FileProgress: func(index int, delta int64) {
					received[index] += delta
					if bars[index] != nil && sizes[index] > 0 {
						bars[index].UpdateProgress(float64(received[index]) / float64(sizes[index]))
					}
				},
				FileDone: func(index int, record client.TransferRecord) {
					if bars[index] != nil {
						bars[index].Complete(record.TransferID, nil)
					}
				},
				FileError: func(index int, err error) {
					if bars[index] != nil {
						bars[index].Complete("", err)
					}
				},
			}

			results := client.SendBatch(GetContext(), httpClient, adapter, paths, parallel, opts, listener)

			var failures int
			for _, r := range results {
				if r.Err != nil {
					failures++
					fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Filename, r.Err)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failures, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Number of concurrent uploads (0 = auto-detect from CPU count)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into directories")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", constants.DefaultChunkSize, "Stream chunk size in bytes")
	cmd.Flags().StringVar(&codecBinary, "codec-binary", "", "Path to the external codec executable (default: mscompress on PATH)")
	cmd.Flags().StringVar(&proxyMode, "proxy-mode", "", `Proxy mode: "system" or "no-proxy"`)

	return cmd
}
