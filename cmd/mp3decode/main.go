// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command mp3decode decodes an MPEG-1 Layer III file to a 16-bit PCM
// WAV file on disk, or reports its tags and duration without decoding.
//
// Grounded on the wav2flac command in the retrieval pack (pflag for
// flags instead of the stdlib flag package, following the rest of
// this module's CLI conventions) and on go-audio/wav's Encoder for
// writing PCM out.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	flag "github.com/spf13/pflag"

	"github.com/soundcore-go/mp3"
)

func main() {
	var (
		outPath  string
		infoOnly bool
	)
	flag.StringVarP(&outPath, "out", "o", "", "write decoded audio to this WAV file")
	flag.BoolVarP(&infoOnly, "info", "i", false, "print stream info and exit without decoding")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mp3decode [-o out.wav] [-i] input.mp3")
		os.Exit(2)
	}
	if err := run(flag.Arg(0), outPath, infoOnly); err != nil {
		log.Fatal(err)
	}
}

func run(inPath, outPath string, infoOnly bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}

	d, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return err
	}
	defer d.Close()

	fmt.Printf("sample rate: %d Hz\n", d.SampleRate())
	fmt.Printf("duration: %v\n", d.Duration())
	if t := d.Tags; t != nil {
		fmt.Printf("tags: artist=%q title=%q album=%q year=%q\n", t.Artist, t.Title, t.Album, t.Year)
	}
	if infoOnly {
		return nil
	}
	if outPath == "" {
		return nil
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := wav.NewEncoder(out, d.SampleRate(), 16, 2, 1)
	defer enc.Close()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: d.SampleRate()},
		SourceBitDepth: 16,
	}
	for {
		pcm, err := d.DecodeFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		buf.Data = buf.Data[:0]
		for _, sample := range pcm {
			s := int(sample * 32767)
			if s > 32767 {
				s = 32767
			} else if s < -32767 {
				s = -32767
			}
			buf.Data = append(buf.Data, s)
		}
		if err := enc.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
