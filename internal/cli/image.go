package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"nibsteg/pkg/config"
	nibstegImage "nibsteg/pkg/image"
	"nibsteg/pkg/model"
)

func ImageCommands() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:     "image",
		Short:   "Hides images inside images, and recovers them",
		Example: "nibsteg image merge --carrier carrier.png --payload secret.png --output-file merged.png",
	}

	imageCmd.AddCommand(mergeImageCommand(), unmergeImageCommand())
	return imageCmd
}

type commonOpts struct {
	workers        int
	rowsPerChunk   int
	pngCompression string
}

func (o commonOpts) toCodecConfig() config.CodecConfig {
	return config.CodecConfig{
		Workers:      o.workers,
		RowsPerChunk: o.rowsPerChunk,
	}
}

func (o *commonOpts) addFlagsTo(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Goroutines used to transform rows of pixels. Defaults to the number of CPUs")
	cmd.Flags().IntVar(&o.rowsPerChunk, "rows-per-chunk", config.DefaultRowsPerChunk, "Rows of pixels handled by a single goroutine at a time")
	cmd.Flags().StringVar(&o.pngCompression, "png-compression", "default", "Compression for output png. Options are default, none, fast, best")
}

type mergeImageOpts struct {
	carrierImage string
	payloadImage string
	outputImage  string
	config       commonOpts
}

func mergeImageCommand() *cobra.Command {
	opts := &mergeImageOpts{}

	mergeImgCmd := &cobra.Command{
		Use:     "merge",
		Example: "nibsteg image merge --carrier carrier.png --payload secret.png --output-file merged.png",
		Short:   "Hide the payload image inside the carrier image",
		Long: "Keeps the four most significant bits of every channel of the carrier, and stores the four most " +
			"significant bits of the payload in the remaining bits. The payload must not be wider or taller than the carrier",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := MergeImageFiles(opts.carrierImage, opts.payloadImage, opts.outputImage, opts.config)
			return err
		},
	}

	mergeImgCmd.Flags().StringVar(&opts.carrierImage, "carrier", "", "Image that will carry the hidden image")
	mergeImgCmd.Flags().StringVar(&opts.payloadImage, "payload", "", "Image to hide inside the carrier")
	mergeImgCmd.Flags().StringVar(&opts.outputImage, "output-file", "", "Name for the merged png image that will be generated")
	opts.config.addFlagsTo(mergeImgCmd)

	MarkFlagsRequired(mergeImgCmd, "carrier", "payload", "output-file")

	return mergeImgCmd
}

type unmergeImageOpts struct {
	mergedImage string
	outputImage string
	config      commonOpts
}

func unmergeImageCommand() *cobra.Command {
	opts := &unmergeImageOpts{}

	unmergeCommand := &cobra.Command{
		Use:     "unmerge",
		Example: "nibsteg image unmerge --source merged.png --output-file recovered.png",
		Short:   "Recover the image hidden in an image generated by nibsteg",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := UnmergeImageFile(opts.mergedImage, opts.outputImage, opts.config)
			return err
		},
	}

	unmergeCommand.Flags().StringVar(&opts.mergedImage, "source", "", "Image generated by nibsteg image merge")
	unmergeCommand.Flags().StringVar(&opts.outputImage, "output-file", "", "Name for the recovered png image that will be generated")
	opts.config.addFlagsTo(unmergeCommand)

	MarkFlagsRequired(unmergeCommand, "source", "output-file")

	return unmergeCommand
}

func MergeImageFiles(carrierPath, payloadPath, outputPath string, opts commonOpts) (model.TransformStats, error) {
	var stats model.TransformStats
	pngCompression, err := parseCompression(opts.pngCompression)
	if err != nil {
		return stats, err
	}

	s := NewSpinner()
	s.Prefix = "Reading source images from disk "
	s.Start()
	defer s.Stop()

	decodeStart := time.Now()
	carrier, err := nibstegImage.ReadRGBAFile(carrierPath)
	if err != nil {
		return stats, err
	}
	payload, err := nibstegImage.ReadRGBAFile(payloadPath)
	if err != nil {
		return stats, err
	}
	stats.ImageDecoding = time.Since(decodeStart)

	setSpinnerPrefix(s, "Merging images ")
	transformStart := time.Now()
	merged, err := nibstegImage.NewCodec(opts.toCodecConfig()).Merge(carrier, payload)
	if err != nil {
		return stats, err
	}
	stats.Transform = time.Since(transformStart)

	setSpinnerPrefix(s, "Generating output PNG image ")
	outputSize, err := writePNG(outputPath, merged, pngCompression, &stats)
	if err != nil {
		return stats, err
	}

	s.Lock()
	s.FinalMSG = fmt.Sprintf("Generated %s (%s) which hides %s inside %s\n", outputPath, humanize.Bytes(uint64(outputSize)),
		payloadPath, carrierPath)
	s.Unlock()
	s.Stop()
	printStats(stats)
	return stats, nil
}

func UnmergeImageFile(mergedPath, outputPath string, opts commonOpts) (model.TransformStats, error) {
	var stats model.TransformStats
	pngCompression, err := parseCompression(opts.pngCompression)
	if err != nil {
		return stats, err
	}

	s := NewSpinner()
	s.Prefix = "Reading source image from disk "
	s.Start()
	defer s.Stop()

	decodeStart := time.Now()
	merged, err := nibstegImage.ReadRGBAFile(mergedPath)
	if err != nil {
		return stats, err
	}
	stats.ImageDecoding = time.Since(decodeStart)

	setSpinnerPrefix(s, "Recovering hidden image ")
	transformStart := time.Now()
	unmerged := nibstegImage.NewCodec(opts.toCodecConfig()).Unmerge(merged)
	stats.Transform = time.Since(transformStart)

	setSpinnerPrefix(s, "Generating output PNG image ")
	outputSize, err := writePNG(outputPath, unmerged, pngCompression, &stats)
	if err != nil {
		return stats, err
	}

	s.Lock()
	s.FinalMSG = fmt.Sprintf("Recovered the image hidden in %s into %s (%s)\n", mergedPath, outputPath,
		humanize.Bytes(uint64(outputSize)))
	s.Unlock()
	s.Stop()
	printStats(stats)
	return stats, nil
}

func writePNG(outputPath string, img image.Image, level png.CompressionLevel, stats *model.TransformStats) (int64, error) {
	encodeStart := time.Now()
	defer func() {
		stats.OutputImageEncoding = time.Since(encodeStart)
	}()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer outputFile.Close()

	if err = nibstegImage.EncodePNG(outputFile, img, level); err != nil {
		return 0, err
	}
	stat, err := outputFile.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func parseCompression(name string) (png.CompressionLevel, error) {
	level, found := config.ParsePngCompression(name)
	if !found {
		return level, fmt.Errorf("%w: %q", config.ErrUnknownCompression, name)
	}
	return level, nil
}

func printStats(stats model.TransformStats) {
	fmt.Fprintf(output, "Image decode time: %s\n", stats.ImageDecoding)
	fmt.Fprintf(output, "Transform time: %s\n", stats.Transform)
	fmt.Fprintf(output, "Output image encode time: %s\n", stats.OutputImageEncoding)
}
