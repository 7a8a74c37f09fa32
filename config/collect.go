package config

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const DefaultListenAddress = "0.0.0.0:19134"

// LoadStartConfig reads a json start config over the defaults, comments allowed
func LoadStartConfig(path string) (*StartConfig, error) {
	config := DefaultStartConfig()
	config.writeBackPath = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("unmarshal config file (%v): %w", path, err)
	}
	return &config, nil
}

func LoadPluginSystemConfig(path string) (*PluginSystemConfig, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	pluginsConfig := &PluginSystemConfig{}
	if err := yaml.NewDecoder(fp).Decode(pluginsConfig); err != nil {
		return nil, fmt.Errorf("unmarshal plugin config file (%v): %w", path, err)
	}
	return pluginsConfig, nil
}

// ask keeps prompting until a non-empty line is read
func ask(reader *bufio.Reader, out io.Writer, prompt string) string {
	answer := ""
	for answer == "" {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		answer = strings.TrimRight(line, "\r\n")
		if err != nil {
			break
		}
	}
	return answer
}

func CollectInfo() *StartConfig {
	flag.Parse()
	args := flag.Args()
	configFile := *argConfigFile
	if configFile == "" && len(args) > 0 {
		configFile = args[0]
	}
	var config *StartConfig
	if configFile == "" {
		configFile = "config.json"
		if _, err := os.Lstat(configFile); os.IsNotExist(err) {
			fmt.Println("Main: No config provided, will create a config file automatically")
			c := DefaultStartConfig()
			c.writeBackPath = configFile
			config = &c
		} else {
			fmt.Println("Main: Config file not specific, we will use the default: 'config.json'")
		}
	}
	if config == nil {
		var err error
		config, err = LoadStartConfig(configFile)
		if err != nil {
			panic(fmt.Sprintf("Main: Error at reading config file (%v) (%v)", configFile, err))
		}
	}

	if config.ShieldConfig.ListenAddress == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			reader := bufio.NewReader(os.Stdin)
			config.ShieldConfig.ListenAddress = ask(reader, os.Stdout,
				fmt.Sprintf("Listen Address (should be something like %v): ", DefaultListenAddress))
		}
		if config.ShieldConfig.ListenAddress == "" {
			config.ShieldConfig.ListenAddress = DefaultListenAddress
		}
	}

	// load plugins config file
	pluginsConfig, err := LoadPluginSystemConfig(config.PluginConfigPath)
	if err != nil {
		panic(fmt.Sprintf("Main: Error at Unmarshal plugin config file (%v) (%v)", config.PluginConfigPath, err))
	}
	config.pluginsConfig = *pluginsConfig
	return config
}

func WriteBackConfig(config *StartConfig) {
	fp, err := os.Create(config.writeBackPath)
	if err != nil {
		panic(fmt.Sprintf("Main: Fail to create updated config (%v)", err))
	}
	defer fp.Close()
	encoder := json.NewEncoder(fp)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(config); err != nil {
		panic(fmt.Sprintf("Main: fail to marshal updated config (%v)", err))
	}
}
