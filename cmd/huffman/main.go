// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/bytepacker/huffman"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"
)

type compressFlags struct {
	Verbose     bool   `subcmd:"verbose,false,verbose debug/trace information"`
	ProgressBar bool   `subcmd:"progress,true,display a progress bar"`
	OutputFile  string `subcmd:"output,,'output file or s3 path, omit for stdout'"`
}

type decompressFlags struct {
	Verbose     bool   `subcmd:"verbose,false,verbose debug/trace information"`
	ProgressBar bool   `subcmd:"progress,true,display a progress bar"`
	OutputFile  string `subcmd:"output,,'output file or s3 path, omit for stdout'"`
}

type inspectFlags struct{}

var cmdSet *subcmd.CommandSet

func init() {
	compressCmd := subcmd.NewCommand("compress",
		subcmd.MustRegisterFlagStruct(&compressFlags{}, nil, nil),
		compress, subcmd.ExactlyNumArguments(1))
	compressCmd.Document(`compress a file into a Huffman-coded stream. Files may be local, on S3 or a URL.`)

	decompressCmd := subcmd.NewCommand("decompress",
		subcmd.MustRegisterFlagStruct(&decompressFlags{}, nil, nil),
		decompress, subcmd.ExactlyNumArguments(1))
	decompressCmd.Document(`decompress a Huffman-coded stream. Files may be local, on S3 or a URL.`)

	inspectCmd := subcmd.NewCommand("inspect",
		subcmd.MustRegisterFlagStruct(&inspectFlags{}, nil, nil),
		inspect, subcmd.ExactlyNumArguments(1))
	inspectCmd.Document(`print the tree frame header and checksum status of a Huffman-coded stream without decoding its body.`)

	cmdSet = subcmd.NewCommandSet(compressCmd, decompressCmd, inspectCmd)
	cmdSet.Document(`compress, decompress and inspect Huffman-coded streams. Files may be local, on S3 or a URL.`)

	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func openFileOrURL(ctx context.Context, name string) (io.Reader, int64, func(context.Context) error, error) {
	if strings.HasPrefix(name, "http") {
		resp, err := http.Get(name)
		if err != nil {
			return nil, 0, nil, err
		}
		return resp.Body,
			resp.ContentLength,
			func(context.Context) error {
				resp.Body.Close()
				return nil
			},
			err
	}
	info, err := file.Stat(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	return f.Reader(ctx), info.Size(), f.Close, nil
}

func createFile(ctx context.Context, name string) (io.Writer, func(context.Context) error, error) {
	if len(name) == 0 {
		return os.Stdout,
			func(context.Context) error {
				return nil
			},
			nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), f.Close, nil
}

func progressBar(progressBarWr io.Writer, ch chan huffman.Progress, size int64) {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(progressBarWr),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	prev := int64(0)
	for p := range ch {
		bar.Add64(p.Compressed - prev)
		prev = p.Compressed
	}
	fmt.Fprintf(progressBarWr, "\n")
}

func progressWriter(isTTY bool, enabled bool, size int64) (func(huffman.Progress), func()) {
	if !enabled {
		return nil, func() {}
	}
	ch := make(chan huffman.Progress, 16)
	wr := os.Stdout
	if !isTTY {
		wr = os.Stderr
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		progressBar(wr, ch, size)
	}()
	return func(p huffman.Progress) { ch <- p }, func() { close(ch); wg.Wait() }
}

// printSummary reports end-of-run throughput, sizes, compression ratio
// and elapsed time, the Go rendering of the original implementation's
// `main.cpp` "encoding/decoding speed : ... Mb/sec" report, extended
// with the size/ratio fields huffman.Progress already tracks.
func printSummary(op string, original, compressed int64, dur time.Duration) {
	var mbPerSec, ratio float64
	if dur > 0 {
		mbPerSec = float64(original) / 1e6 / dur.Seconds()
	}
	if original > 0 {
		ratio = 100 * float64(compressed) / float64(original)
	}
	fmt.Printf("%s speed : %.2f Mb/sec (%d -> %d bytes, %.1f%%) in %v\n",
		op, mbPerSec, original, compressed, ratio, dur.Round(time.Millisecond))
}

func compress(ctx context.Context, values interface{}, args []string) error {
	cl := values.(*compressFlags)
	if cl.Verbose {
		huffman.Logf = log.Printf
	}

	rd, size, readerCleanup, err := openFileOrURL(ctx, args[0])
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	wr, writerCleanup, err := createFile(ctx, cl.OutputFile)
	if err != nil {
		return err
	}

	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	onProg, done := progressWriter(isTTY, cl.ProgressBar && (len(cl.OutputFile) > 0 || !isTTY), size)

	errs := &errors.M{}
	buf, err := io.ReadAll(rd)
	errs.Append(err)

	start := time.Now()
	var final huffman.Progress
	enc := huffman.NewWriter(wr, huffman.WithWriteProgress(func(p huffman.Progress) {
		final = p
		if onProg != nil {
			onProg(p)
		}
	}))
	_, err = enc.Write(buf)
	errs.Append(err)
	errs.Append(enc.Close())
	errs.Append(writerCleanup(ctx))
	done()
	if errs.Err() == nil {
		printSummary("encoding", int64(len(buf)), final.Compressed, time.Since(start))
	}
	return errs.Err()
}

func decompress(ctx context.Context, values interface{}, args []string) error {
	cl := values.(*decompressFlags)
	if cl.Verbose {
		huffman.Logf = log.Printf
	}

	rd, size, readerCleanup, err := openFileOrURL(ctx, args[0])
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	wr, writerCleanup, err := createFile(ctx, cl.OutputFile)
	if err != nil {
		return err
	}

	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	onProg, done := progressWriter(isTTY, cl.ProgressBar && (len(cl.OutputFile) > 0 || !isTTY), size)

	start := time.Now()
	var final huffman.Progress
	dc := huffman.NewReader(rd, huffman.WithProgress(func(p huffman.Progress) {
		final = p
		if onProg != nil {
			onProg(p)
		}
	}))

	errs := &errors.M{}
	n, err := io.Copy(wr, dc)
	errs.Append(err)
	errs.Append(writerCleanup(ctx))
	done()
	if errs.Err() == nil {
		printSummary("decoding", n, final.Compressed, time.Since(start))
	}
	return errs.Err()
}
