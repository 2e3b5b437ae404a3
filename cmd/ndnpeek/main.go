/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/face"
	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/lpv2"
)

// Version of ndnpeek.
var Version string

func main() {
	core.Version = Version

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "", "Configuration file location")
	var faceURI string
	flag.StringVar(&faceURI, "face", "", "Forwarder URI (overrides the faces.uri configuration key)")
	var lifetime int
	flag.IntVar(&lifetime, "lifetime", 4000, "Interest lifetime (milliseconds)")
	var canBePrefix bool
	flag.BoolVar(&canBePrefix, "prefix", false, "Allow the Data name to extend the Interest name")
	var mustBeFresh bool
	flag.BoolVar(&mustBeFresh, "fresh", false, "Require the Data to be fresh")
	var payloadOnly bool
	flag.BoolVar(&payloadOnly, "payload", false, "Write the Data content to stdout instead of a summary")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("ndnpeek: consume one Data packet from an NDN network")
		fmt.Println("Version " + core.Version)
		fmt.Println("Copyright (C) 2021-2024 Regents of the University of California")
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[options] <name>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if configFileName != "" {
		core.LoadConfig(configFileName)
	}
	core.InitializeLogger()
	face.Configure()

	name, err := ndn.NameFromString(flag.Arg(0))
	if err != nil {
		core.LogFatal("Main", "Invalid name ", flag.Arg(0), ": ", err)
	}

	if faceURI == "" {
		faceURI = core.GetConfigStringDefault("faces.uri", "unix://"+face.UnixSocketPath)
	}
	uri := face.DecodeURIString(faceURI)
	transport, err := face.MakeTransportFromURI(uri)
	if err != nil {
		core.LogFatal("Main", "Unable to create transport for ", uri, ": ", err)
	}
	app := face.NewFace(transport, face.FaceOptions{})

	interest := ndn.NewInterest(name)
	interestLifetime := time.Duration(lifetime) * time.Millisecond
	interest.SetLifetime(&interestLifetime)
	interest.SetCanBePrefix(canBePrefix)
	interest.SetMustBeFresh(mustBeFresh)

	done := false
	exitStatus := 0
	_, err = app.ExpressInterest(interest, face.ExpressInterestOptions{
		OnData: func(interest *ndn.Interest, data *ndn.Data) {
			if payloadOnly {
				os.Stdout.Write(data.Content().Bytes())
			} else {
				fmt.Println(data)
			}
			done = true
		},
		OnTimeout: func(interest *ndn.Interest) {
			fmt.Fprintln(os.Stderr, "Timeout for "+interest.Name().String())
			exitStatus = 3
			done = true
		},
		OnNetworkNack: func(interest *ndn.Interest, nack *lpv2.NetworkNack) {
			fmt.Fprintln(os.Stderr, "Nack for "+interest.Name().String()+": "+nack.String())
			exitStatus = 4
			done = true
		},
	})
	if err != nil {
		core.LogFatal("Main", "Unable to express Interest: ", err)
	}

	for !done {
		if err := app.ProcessEvents(); err != nil {
			core.LogFatal("Main", "Error processing events: ", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	app.Close()
	os.Exit(exitStatus)
}
