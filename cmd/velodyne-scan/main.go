// Command velodyne-scan is a trivial frontend: it walks one or more pcap
// capture files and prints a per-file count of points, packets, and
// decode errors. It does no visualization, storage, or streaming — see
// the velodyne and velodynepcap packages for that line.
//
// Build with -tags=pcap (and libpcap installed) to enable real capture
// file reading.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/banshee-data/go-velodyne"
	"github.com/banshee-data/go-velodyne/internal/monitoring"
	"github.com/banshee-data/go-velodyne/velodynepcap"
)

type fileSummary struct {
	path        string
	packets     int
	dataPackets int
	posPackets  int
	points      int
	errors      int
}

func scanFile(path string, udpPort int) (fileSummary, error) {
	summary := fileSummary{path: path}

	src, err := velodynepcap.OpenFile(path, udpPort)
	if err != nil {
		return summary, err
	}
	defer src.Close()

	for {
		payload, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return summary, nil
			}
			return summary, err
		}

		summary.packets++
		pkt, err := velodyne.Decode(payload)
		if err != nil {
			summary.errors++
			monitoring.Logf("%s: packet %d: %v", path, summary.packets, err)
			continue
		}

		if pkt.IsData() {
			summary.dataPackets++
			summary.points += len(pkt.Points())
		} else {
			summary.posPackets++
		}
	}
}

func printSummary(s fileSummary) {
	line := fmt.Sprintf("%s: %d packets (%d data, %d position), %d points",
		s.path, s.packets, s.dataPackets, s.posPackets, s.points)
	if s.errors > 0 {
		color.Red("%s, %d errors", line, s.errors)
		return
	}
	color.Green("%s", line)
}

func run(c *cli.Context) error {
	udpPort := c.Int("udp-port")
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("velodyne-scan: at least one capture file is required")
	}

	runID := uuid.New()
	monitoring.Logf("velodyne-scan run %s: scanning %d file(s)", runID, len(files))

	bar := pb.StartNew(len(files))
	defer bar.Finish()

	var failed int
	for _, f := range files {
		summary, err := scanFile(f, udpPort)
		if err != nil {
			failed++
			color.Red("%s: %v", f, err)
		} else {
			printSummary(summary)
		}
		bar.Increment()
	}

	if failed > 0 {
		return fmt.Errorf("velodyne-scan: %d of %d files failed to scan", failed, len(files))
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "velodyne-scan",
		Usage:     "walk Velodyne pcap capture files and print a per-file point count",
		ArgsUsage: "<capture.pcap> [more.pcap ...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "udp-port",
				Value: 2368,
				Usage: "UDP port the sensor's Data/Position packets were captured on",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
