package plugins

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/config"
	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder"
	"github.com/VincentZyu233/woodenaxe/plugins/journal"
	"github.com/VincentZyu233/woodenaxe/task"
)

var pool map[string]func() define.Plugin
var poolOnce sync.Once

func Pool() map[string]func() define.Plugin {
	poolOnce.Do(func() {
		pool = make(map[string]func() define.Plugin)

		// Registry
		pool["storage"] = func() define.Plugin { return &Storage{} }
		pool["cli_interface"] = func() define.Plugin { return &CliInterface{} }
		pool["ask_for_op"] = func() define.Plugin { return &AskForOP{} }
		pool["game_chat"] = func() define.Plugin { return &GameChat{} }
		pool["send_cmd_line"] = func() define.Plugin { return &SendCmdLine{} }
		pool["journal"] = func() define.Plugin { return &journal.Plugin{} }
		pool["builder"] = func() define.Plugin { return &builder.Builder{} }
	})
	return pool
}

// Load creates, injects and starts every configured plugin in order and
// returns a function closing them all.
func Load(taskIO *task.TaskIO, pluginsConfig *config.PluginSystemConfig) (func(), error) {
	if pluginsConfig.Version != "0.0.0" {
		return nil, fmt.Errorf("plugin config version %q not supported", pluginsConfig.Version)
	}
	closeFns := make([]func(), 0)
	closeAll := func() {
		for i := len(closeFns) - 1; i >= 0; i-- {
			closeFns[i]()
		}
	}
	collaborationContext := make(map[string]define.Plugin)
	for i, plugin := range pluginsConfig.Plugins {
		if plugin.As == "" {
			plugin.As = plugin.Name
		}
		color.Blue("loading Plugin: %v. %v As %v from %v", i, plugin.Name, plugin.As, plugin.File)
		for _, r := range plugin.Require {
			if _, hasK := collaborationContext[r]; !hasK {
				closeAll()
				return nil, fmt.Errorf(`plugin: %v require plugin: "%v", but "%v" has not injected`, plugin.Name, r, r)
			}
		}
		if plugin.File != "internal" {
			closeAll()
			return nil, fmt.Errorf("plugin: %v: only internal plugins are supported, got file %q", plugin.Name, plugin.File)
		}
		p, ok := Pool()[plugin.Name]
		if !ok {
			closeAll()
			return nil, fmt.Errorf("no such plugin: (%v)", plugin.Name)
		}
		pluginConfigBytes, _ := yaml.Marshal(plugin.Configs)
		pi := p().New(pluginConfigBytes)
		collaborationContext[plugin.As] = pi
		go pi.Inject(taskIO, collaborationContext).Routine()
		closeFns = append(closeFns, pi.Close)
	}
	return closeAll, nil
}
