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
	"io"
	"os"
	"time"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/face"
	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/security"
)

// Version of ndnpoke.
var Version string

func main() {
	core.Version = Version

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "", "Configuration file location")
	var faceURI string
	flag.StringVar(&faceURI, "face", "", "Forwarder URI (overrides the faces.uri configuration key)")
	var freshness int
	flag.IntVar(&freshness, "freshness", 0, "Data freshness period (milliseconds, 0 to omit)")
	var wait int
	flag.IntVar(&wait, "wait", 0, "Give up after this many milliseconds without an Interest (0 to wait forever)")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("ndnpoke: publish one Data packet read from stdin")
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

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		core.LogFatal("Main", "Unable to read payload from stdin: ", err)
	}

	data := ndn.NewData(name)
	data.SetContent(ndn.NewBlob(payload, false))
	if freshness > 0 {
		freshnessPeriod := time.Duration(freshness) * time.Millisecond
		data.MetaInfo().SetFreshnessPeriod(&freshnessPeriod)
	}
	if err := security.SignData(data, ndn.DefaultWireFormat); err != nil {
		core.LogFatal("Main", "Unable to sign Data: ", err)
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

	served := false
	failed := false
	_, err = app.RegisterPrefix(name, face.RegisterPrefixOptions{
		OnInterest: func(prefix *ndn.Name, interest *ndn.Interest, interestFilterId uint64, filter *ndn.InterestFilter) {
			if err := app.PutData(data); err != nil {
				core.LogError("Main", "Unable to send Data: ", err)
				return
			}
			served = true
		},
		OnRegisterSuccess: func(prefix *ndn.Name, registeredPrefixId uint64) {
			core.LogInfo("Main", "Registered prefix ", prefix, ", waiting for an Interest")
		},
		OnRegisterFailed: func(prefix *ndn.Name) {
			core.LogError("Main", "Unable to register prefix ", prefix)
			failed = true
		},
	})
	if err != nil {
		core.LogFatal("Main", "Unable to register prefix: ", err)
	}

	var deadline time.Time
	if wait > 0 {
		deadline = time.Now().Add(time.Duration(wait) * time.Millisecond)
	}
	for !served && !failed {
		if err := app.ProcessEvents(); err != nil {
			core.LogFatal("Main", "Error processing events: ", err)
		}
		if wait > 0 && time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "Timeout waiting for an Interest under "+name.String())
			app.Close()
			os.Exit(3)
		}
		time.Sleep(10 * time.Millisecond)
	}

	app.Close()
	if failed {
		os.Exit(2)
	}
}
