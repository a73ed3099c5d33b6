// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"

	"github.com/cosnicolaou/xnbtool"
	"github.com/cosnicolaou/xnbtool/internal/asset"
	"github.com/cosnicolaou/xnbtool/internal/export"
)

type decodeFlags struct {
	Format     string `subcmd:"format,png,'output format: png, wav, or raw'"`
	OutputFile string `subcmd:"output,,'output file, omit to write to standard output'"`
}

type inspectFlags struct{}

type batchFlags struct {
	Concurrency int  `subcmd:"concurrency,4,'concurrency for batch decoding'"`
	Progress    bool `subcmd:"progress,true,display a progress bar"`
}

var cmdSet *subcmd.CommandSet

func init() {
	defaultConcurrency := map[string]interface{}{
		"concurrency": runtime.GOMAXPROCS(-1),
	}

	decodeCmd := subcmd.NewCommand("decode",
		subcmd.MustRegisterFlagStruct(&decodeFlags{}, nil, nil),
		decode, subcmd.ExactlyNumArguments(1))
	decodeCmd.Document(`decode a single XNB file and export its primary object as PNG, WAV, or raw bytes.`)

	inspectCmd := subcmd.NewCommand("inspect",
		subcmd.MustRegisterFlagStruct(&inspectFlags{}, nil, nil),
		inspect, subcmd.AtLeastNArguments(1))
	inspectCmd.Document(`print the container header fields of one or more XNB files.`)

	batchCmd := subcmd.NewCommand("batch",
		subcmd.MustRegisterFlagStruct(&batchFlags{}, defaultConcurrency, nil),
		batch, subcmd.AtLeastNArguments(1))
	batchCmd.Document(`decode every XNB file under the given directories or files concurrently.`)

	cmdSet = subcmd.NewCommandSet(decodeCmd, inspectCmd, batchCmd)
	cmdSet.Document(`decode and inspect XNB content files. Files may be local, on S3, or a URL.`)

	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func createFile(ctx context.Context, name string) (io.Writer, func(context.Context) error, error) {
	if len(name) == 0 {
		return os.Stdout, func(context.Context) error { return nil }, nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), f.Close, nil
}

func decode(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)
	cl := values.(*decodeFlags)

	a, err := xnbtool.Decode(ctx, args[0])
	if err != nil {
		return err
	}

	wr, writerCleanup, err := createFile(ctx, cl.OutputFile)
	if err != nil {
		return err
	}
	defer writerCleanup(ctx) //nolint:errcheck

	switch cl.Format {
	case "png":
		tex, ok := a.Content.(asset.Texture2D)
		if !ok {
			return fmt.Errorf("xnbtool: %s does not decode to a Texture2D, cannot export png", args[0])
		}
		return export.WritePNG(wr, tex)
	case "wav":
		snd, ok := a.Content.(asset.SoundEffect)
		if !ok {
			return fmt.Errorf("xnbtool: %s does not decode to a SoundEffect, cannot export wav", args[0])
		}
		return export.WriteWAV(wr, snd)
	case "raw":
		fmt.Fprintf(wr, "%#v\n", a.Content)
		return nil
	default:
		return fmt.Errorf("xnbtool: unknown format %q", cl.Format)
	}
}

func main() {
	cmdSet.MustDispatch(context.Background())
}
