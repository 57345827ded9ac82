// SPDX-License-Identifier: ISC

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

func main() {
	defer exitwithstatus.Handler()

	globals := struct {
		host string
	}{}

	app := cli.NewApp()
	app.Name = "elpp-gatewayctl"
	app.Usage = "inspect a running elpp-gateway"
	app.Version = "1.0.0"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "host, H",
			Value:       "http://127.0.0.1:2560",
			Usage:       "elpp-gateway introspection base url",
			Destination: &globals.host,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "devices",
			Usage: "list every device's in-flight transaction table",
			Action: func(c *cli.Context) error {
				return fetchAndPrint(globals.host + "/api/device_states")
			},
		},
		{
			Name:  "tapos",
			Usage: "show TAPOS manager state and dispatch counters per chain",
			Action: func(c *cli.Context) error {
				return fetchAndPrint(globals.host + "/api/tapos_manager_state")
			},
		},
		{
			Name:  "version",
			Usage: "show the running gateway's build version",
			Action: func(c *cli.Context) error {
				return fetchAndPrint(globals.host + "/api/version")
			},
		},
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s\n", err)
	}
}

func fetchAndPrint(url string) error {
	resp, err := http.Get(url)
	if nil != err {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if nil != err {
		return err
	}

	if http.StatusOK != resp.StatusCode {
		return fmt.Errorf("%s: %s", url, body)
	}

	var pretty interface{}
	if err := json.Unmarshal(body, &pretty); nil != err {
		fmt.Println(string(body))
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if nil != err {
		return err
	}
	fmt.Println(string(out))
	return nil
}
