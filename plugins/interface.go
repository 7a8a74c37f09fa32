package plugins

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

type stringInterceptor struct {
	name      string
	intercept define.InterceptFn
}

// CliInterface reads console lines, offers them to the registered interceptors
// and says whatever nobody caught in game.
type CliInterface struct {
	Prefix                 string `yaml:"chat_prefix"`
	taskIO                 *task.TaskIO
	collaborationContext   map[string]define.Plugin
	mu                     sync.Mutex
	stringSender           map[string]func(isJson bool, data string)
	stringInterceptorCount int
	stringInterceptors     map[int]stringInterceptor
	in                     io.Reader
	out                    io.Writer
}

func (u *CliInterface) New(config []byte) define.Plugin {
	err := yaml.Unmarshal(config, u)
	if err != nil {
		panic(err)
	}
	u.stringSender = make(map[string]func(isJson bool, data string))
	u.stringInterceptorCount = 0
	u.stringInterceptors = make(map[int]stringInterceptor)
	u.in = os.Stdin
	u.out = color.Output
	return u
}

func (u *CliInterface) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	u.taskIO = taskIO
	u.collaborationContext = collaborationContext
	return u
}

func (u *CliInterface) RegStringSender(name string) func(isJson bool, data string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, hasK := u.stringSender[name]; hasK {
		return nil
	}
	fn := func(isJson bool, data string) {
		u.NewString(name, isJson, data)
	}
	u.stringSender[name] = fn
	return fn
}

func (u *CliInterface) RegStringInterceptor(name string, intercept define.InterceptFn) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	c := u.stringInterceptorCount + 1
	if c == 0 {
		panic("RegStringInterceptors Over Limit!")
	}
	u.stringInterceptorCount = c
	u.stringInterceptors[c] = stringInterceptor{name: name, intercept: intercept}
	return c
}

func (u *CliInterface) RemoveStringInterceptor(interceptID int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.stringInterceptors, interceptID)
}

func (u *CliInterface) NewString(source string, isJson bool, data string) {
	data = strings.TrimSpace(data)
	if isJson {
		var anyData interface{}
		err := json.Unmarshal([]byte(data), &anyData)
		if err == nil {
			fmt.Fprintf(u.out, "(%v) Json> %v\n", source, anyData)
		} else {
			fmt.Fprintf(u.out, "(%v) BrokenJson(%v)> %v\n", source, err, data)
		}
	} else {
		fmt.Fprintf(u.out, "(%v) Text> %v\n", source, data)
	}
}

// interceptors in registration order
func (u *CliInterface) interceptors() []stringInterceptor {
	u.mu.Lock()
	defer u.mu.Unlock()
	ids := make([]int, 0, len(u.stringInterceptors))
	for id := range u.stringInterceptors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]stringInterceptor, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, u.stringInterceptors[id])
	}
	return ret
}

// Handle offers one console line to the interceptors and reports whether one caught it
func (u *CliInterface) Handle(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, intercept := range u.interceptors() {
		line := s
		var catch bool
		catch, s = intercept.intercept("", s)
		if catch {
			fmt.Fprintf(u.out, "(%s) < %s\n", intercept.name, line)
			return true
		}
	}
	fmt.Fprintf(u.out, "(%s) < %s\n", "game", u.Prefix+s)
	if err := u.taskIO.Say(false, u.Prefix+s); err != nil {
		fmt.Fprintf(u.out, "(%s) ! %v\n", "game", err)
	}
	return false
}

func (u *CliInterface) Routine() {
	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		u.Handle(scanner.Text())
	}
}

func (u *CliInterface) Close() {
}
