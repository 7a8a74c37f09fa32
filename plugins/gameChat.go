package plugins

import (
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

type Dst struct {
	Interface string   `yaml:"plugin"`
	Format    string   `yaml:"format"`
	Filter    []string `yaml:"filter"`
}

// GameChat turns PlayerMessage events into lines: it mirrors them to the
// configured destinations and offers them, with their sender, to interceptors.
type GameChat struct {
	taskIO                 *task.TaskIO
	DstInterfaces          []Dst  `yaml:"dests"`
	Hint                   string `yaml:"hint"`
	sends                  []func(isJson bool, data string)
	mu                     sync.Mutex
	stringInterceptorCount int
	stringInterceptors     map[int]stringInterceptor
}

func (o *GameChat) New(config []byte) define.Plugin {
	o.DstInterfaces = make([]Dst, 0)
	o.Hint = "game-chat"
	err := yaml.Unmarshal(config, o)
	o.stringInterceptorCount = 0
	o.stringInterceptors = make(map[int]stringInterceptor)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *GameChat) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.sends = make([]func(isJson bool, data string), 0)
	for _, dst := range o.DstInterfaces {
		dstInterface := collaborationContext[dst.Interface].(define.StringWriteInterface)
		o.sends = append(o.sends, dstInterface.RegStringSender(o.Hint))
	}
	o.taskIO = taskIO
	taskIO.AddEventCallback(task.EventPlayerMessage, o.onNewEvent)
	return o
}

func (o *GameChat) RegStringInterceptor(name string, intercept define.InterceptFn) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	c := o.stringInterceptorCount + 1
	if c == 0 {
		panic("RegStringInterceptors Over Limit!")
	}
	o.stringInterceptorCount = c
	o.stringInterceptors[c] = stringInterceptor{name: name, intercept: intercept}
	return c
}

func (o *GameChat) RemoveStringInterceptor(interceptID int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.stringInterceptors, interceptID)
}

func (o *GameChat) interceptors() []stringInterceptor {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]int, 0, len(o.stringInterceptors))
	for id := range o.stringInterceptors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]stringInterceptor, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, o.stringInterceptors[id])
	}
	return ret
}

func (o *GameChat) onNewEvent(ev *task.Event, cbID int) {
	msg, err := ev.PlayerMessage()
	if err != nil {
		return
	}
	o.onNewMessage(msg)
}

func (o *GameChat) onNewMessage(msg *task.PlayerMessage) {
	r := strings.NewReplacer("[src]", strings.TrimSpace(msg.Sender), "[msg]", strings.TrimSpace(msg.Message), "[type]", msg.Type)
	for i, send := range o.sends {
		if !o.pass(o.DstInterfaces[i].Filter, msg) {
			continue
		}
		send(false, r.Replace(o.DstInterfaces[i].Format))
	}
	// commands sent over the socket echo back as "External"
	if msg.Sender == "" || msg.Sender == "External" {
		return
	}
	data := strings.TrimSpace(msg.Message)
	for _, intercept := range o.interceptors() {
		var catch bool
		catch, data = intercept.intercept(msg.Sender, data)
		if catch {
			return
		}
	}
}

func (o *GameChat) pass(filter []string, msg *task.PlayerMessage) bool {
	for _, f := range filter {
		switch f {
		case "chat only":
			if msg.Type != "chat" {
				return false
			}
		default:
			if strings.Contains(msg.Message, f) {
				return false
			}
		}
	}
	return true
}

func (o *GameChat) Routine() {

}

func (o *GameChat) Close() {

}
