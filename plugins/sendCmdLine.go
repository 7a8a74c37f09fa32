package plugins

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

type CmdSource struct {
	RegName string `yaml:"reg_name"`
	Plugin  string `yaml:"plugin"`
	Prefix  string `yaml:"prefix"`
}

// SendCmdLine runs prefixed lines as game commands and logs what the game answered
type SendCmdLine struct {
	Sources   []CmdSource `yaml:"sources"`
	LogName   string      `yaml:"log_name"`
	LogPlugin string      `yaml:"log_plugin"`
	Timeout   int         `yaml:"timeout_seconds"`
	taskIO    *task.TaskIO
	log       func(isJson bool, data string)
}

func (o *SendCmdLine) New(config []byte) define.Plugin {
	o.Sources = make([]CmdSource, 0)
	o.LogName = ""
	o.LogPlugin = "storage"
	o.Timeout = 5
	err := yaml.Unmarshal(config, o)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *SendCmdLine) onNewText(fromPlugin string, prefix string, sender string, data string) (bool, string) {
	data = strings.TrimSpace(data)
	if prefix == "" || !strings.HasPrefix(data, prefix) {
		// fall through
		return false, data
	}
	//catch
	cmd := strings.TrimPrefix(data, prefix)
	fmt.Println("cmd [" + fromPlugin + "]: " + cmd)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(o.Timeout)*time.Second)
		defer cancel()
		resp, err := o.taskIO.SendCmdAndWait(ctx, cmd)
		result := ""
		if err != nil {
			result = err.Error()
		} else {
			result = fmt.Sprintf("[%v] %v", resp.StatusCode, resp.StatusMessage)
		}
		fmt.Println("cmd [" + fromPlugin + "]: " + cmd + " -> " + result)
		if o.log != nil {
			o.log(false, fromPlugin+"("+sender+"): "+cmd+" -> "+result)
		}
	}()
	return true, ""
}

func (o *SendCmdLine) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.taskIO = taskIO
	if o.LogName != "" {
		o.log = collaborationContext[o.LogPlugin].(define.StringWriteInterface).RegStringSender(o.LogName)
	}
	for _, s := range o.Sources {
		s := s
		src := collaborationContext[s.Plugin].(define.StringReadInterface)
		src.RegStringInterceptor(s.RegName, func(sender string, data string) (bool, string) {
			return o.onNewText(s.Plugin, s.Prefix, sender, data)
		})
	}
	return o
}

func (o *SendCmdLine) Routine() {

}

func (o *SendCmdLine) Close() {

}
