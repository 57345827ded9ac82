// SPDX-License-Identifier: ISC

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/elpp-gateway/background"
	"github.com/bitmark-inc/elpp-gateway/configuration"
	"github.com/bitmark-inc/elpp-gateway/dispatch"
	"github.com/bitmark-inc/elpp-gateway/fault"
	"github.com/bitmark-inc/elpp-gateway/ingress"
	"github.com/bitmark-inc/elpp-gateway/introspection"
	"github.com/bitmark-inc/elpp-gateway/reassembler"
	"github.com/bitmark-inc/elpp-gateway/tapos"
	"github.com/bitmark-inc/elpp-gateway/util"
)

const defaultConfigFile = "/etc/elpp-gateway/elpp-gateway.json"

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "config", Short: 'c', HasArg: getoptions.REQUIRED_ARGUMENT},
		{Long: "help", Short: 'h', HasArg: getoptions.NO_ARGUMENT},
	}
	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("usage: %s [--config=FILE] <interface-name|ip-address> <port>\n%s", program, err)
	}

	if _, ok := options["help"]; ok {
		exitwithstatus.Message("usage: %s [--config=FILE] <interface-name|ip-address> <port>\n", program)
	}

	if 2 != len(arguments) {
		exitwithstatus.Message("usage: %s [--config=FILE] <interface-name|ip-address> <port>\n", program)
	}

	listenAddress, err := util.ResolveListenAddress(arguments[0], arguments[1])
	if nil != err {
		exitwithstatus.Message("invalid listen address: %s\n", err)
	}

	configFile := defaultConfigFile
	if values, ok := options["config"]; ok && 0 != len(values) {
		configFile = values[len(values)-1]
	}

	config, err := configuration.ParseOptions(configFile)
	if nil != err {
		exitwithstatus.Message("configuration error: %s\n", err)
	}

	if err := logger.Initialise(logger.Configuration{
		Directory: config.Logging.Directory,
		File:      config.Logging.File,
		Size:      config.Logging.Size,
		Count:     config.Logging.Count,
		Levels:    config.Logging.Levels,
	}); nil != err {
		exitwithstatus.Message("logger setup failed: %s\n", err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Debugf("config: %v", config)

	if err := fault.Initialise(); nil != err {
		exitwithstatus.Message("panic log setup failed: %s\n", err)
	}
	defer fault.Finalise()

	re := reassembler.New(config.PurgeAge)

	chains := make(map[string]*tapos.ChainState, len(config.Chains))
	for name, chain := range config.Chains {
		pool := make([]*tapos.ApiPoolEntry, 0, len(chain.ApiPool))
		for _, h := range chain.ApiPool {
			pool = append(pool, &tapos.ApiPoolEntry{Method: h.Method, Host: h.Host})
		}
		chains[name] = tapos.NewChainState(chain.ExpectedChainHash, pool)
	}
	manager := tapos.NewManager(chains)

	d := dispatch.NewDispatcher(manager, config.ChainNames())

	ing := ingress.New(re, manager, d, config.ELPPPort, config.ChainIDNames(), config.IngressTimeout, config.OutboundTimeout)
	insp := introspection.New(re, manager, d, ing)

	processes := background.Processes{}
	processes = append(processes, manager.Processes()...)
	processes = append(processes, d.Processes()...)
	bg := background.Start(processes, nil)
	defer bg.Stop()

	watchShutdown := make(chan struct{})
	if err := configuration.WatchApiPools(configFile, manager, logger.New("configuration"), watchShutdown); nil != err {
		log.Errorf("configuration watch not started: %s", err)
	}
	defer close(watchShutdown)

	mux := http.NewServeMux()
	mux.Handle("/uplink", ing.Router())
	mux.Handle("/api/", insp.Router())

	server := &http.Server{
		Addr:    listenAddress,
		Handler: mux,
	}

	go func() {
		log.Infof("listening on %s", listenAddress)
		if err := server.ListenAndServe(); nil != err && http.ErrServerClosed != err {
			log.Criticalf("listen failed: %s", err)
			exitwithstatus.Exit(1)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.OutboundTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); nil != err {
		log.Errorf("server shutdown: %s", err)
	}
	fmt.Println("program exit")
}
