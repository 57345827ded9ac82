// SPDX-License-Identifier: ISC

package configuration

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/elpp-gateway/tapos"
	"github.com/bitmark-inc/logger"
)

// WatchApiPools - watch path for writes and, on each one, reparse it and
// push the per-chain API pool lists into manager. Expected chain hashes
// and every other setting are not reloaded; only the pool a chain polls
// can change without a restart. Runs until shutdown is closed.
func WatchApiPools(path string, manager *tapos.Manager, log *logger.L, shutdown <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return err
	}
	if err := watcher.Add(path); nil != err {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-shutdown:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if 0 == event.Op&(fsnotify.Write|fsnotify.Create) {
					continue
				}
				reload(path, manager, log)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watching %s: %s", path, err)
			}
		}
	}()
	return nil
}

func reload(path string, manager *tapos.Manager, log *logger.L) {
	c, err := ParseOptions(path)
	if nil != err {
		log.Errorf("reload of %s failed, keeping running pools: %s", path, err)
		return
	}
	for name, chain := range c.Chains {
		pool := make([]*tapos.ApiPoolEntry, 0, len(chain.ApiPool))
		for _, h := range chain.ApiPool {
			pool = append(pool, &tapos.ApiPoolEntry{Method: h.Method, Host: h.Host})
		}
		if err := manager.UpdatePool(name, pool); nil != err {
			log.Errorf("reload of %s: %s", name, err)
			continue
		}
		log.Infof("reloaded api pool for %s: %d hosts", name, len(pool))
	}
}
