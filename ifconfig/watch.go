/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ifconfig

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch calls fn with the freshly read config every time the file at path is
// written or replaced, until ctx is done. If prepare is not nil it runs on
// every config read, before validation. The parent directory is watched so
// editors that save through a rename are noticed too. Configs that fail to
// read or validate are logged and skipped.
func Watch(ctx context.Context, path string, prepare func(*Config), fn func(*Config)) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %q: %w", filepath.Dir(path), err)
	}
	log.Infof("watching %s for changes", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debugf("config event: %v", ev)
			cfg, err := ReadConfig(path)
			if err == nil {
				if prepare != nil {
					prepare(cfg)
				}
				err = cfg.Validate()
			}
			if err != nil {
				log.Errorf("ignoring config change: %v", err)
				continue
			}
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %v", err)
		}
	}
}
