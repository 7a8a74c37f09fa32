package plugins

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/config"
	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/shield"
	"github.com/VincentZyu233/woodenaxe/task"
)

func offlineTaskIO() *task.TaskIO {
	log := logrus.New()
	log.Level = logrus.PanicLevel
	return task.NewTaskIO(shield.NewShield(&shield.ShieldConfig{}, log).IO, log)
}

type lineSink struct {
	lines []string
}

func (l *lineSink) New([]byte) define.Plugin { return l }
func (l *lineSink) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	return l
}
func (l *lineSink) Routine() {}
func (l *lineSink) Close()   {}
func (l *lineSink) RegStringSender(name string) func(isJson bool, data string) {
	return func(isJson bool, data string) { l.lines = append(l.lines, data) }
}

func TestGameChat(t *testing.T) {
	sink := &lineSink{}
	conf, err := yaml.Marshal(map[string]interface{}{
		"dests": []map[string]interface{}{
			{"plugin": "sink", "format": "<[src]> [msg]", "filter": []string{"chat only", "secret"}},
		},
	})
	require.NoError(t, err)
	chat := (&GameChat{}).New(conf).Inject(offlineTaskIO(), map[string]define.Plugin{"sink": sink}).(*GameChat)
	assert.Equal(t, "game-chat", chat.Hint)

	type seen struct{ sender, data string }
	var first, second []seen
	chat.RegStringInterceptor("first", func(sender, data string) (bool, string) {
		first = append(first, seen{sender, data})
		return strings.HasPrefix(data, "!"), data
	})
	id := chat.RegStringInterceptor("second", func(sender, data string) (bool, string) {
		second = append(second, seen{sender, data})
		return false, data
	})

	chat.onNewMessage(&task.PlayerMessage{Sender: "Steve", Message: " hello ", Type: "chat"})
	chat.onNewMessage(&task.PlayerMessage{Sender: "Steve", Message: "!walist", Type: "chat"})
	chat.onNewMessage(&task.PlayerMessage{Sender: "Steve", Message: "my secret", Type: "chat"})
	chat.onNewMessage(&task.PlayerMessage{Sender: "Alex", Message: "whispered", Type: "tell"})
	chat.onNewMessage(&task.PlayerMessage{Sender: "External", Message: "echo", Type: "chat"})

	assert.Equal(t, []string{"<Steve> hello", "<Steve> !walist", "<External> echo"}, sink.lines)
	assert.Equal(t, []seen{
		{"Steve", "hello"},
		{"Steve", "!walist"},
		{"Steve", "my secret"},
		{"Alex", "whispered"},
	}, first)
	// the caught line never reaches the second interceptor
	assert.Len(t, second, 3)

	chat.RemoveStringInterceptor(id)
	chat.onNewMessage(&task.PlayerMessage{Sender: "Steve", Message: "again", Type: "chat"})
	assert.Len(t, second, 3)
}

func TestCliInterfaceHandle(t *testing.T) {
	cli := (&CliInterface{}).New([]byte(`chat_prefix: "[console] "`)).Inject(offlineTaskIO(), nil).(*CliInterface)
	out := &bytes.Buffer{}
	cli.out = out

	var order []string
	cli.RegStringInterceptor("cmd", func(sender, data string) (bool, string) {
		order = append(order, "cmd:"+sender+data)
		return strings.HasPrefix(data, "/"), data
	})
	cli.RegStringInterceptor("builder", func(sender, data string) (bool, string) {
		order = append(order, "builder:"+data)
		return data == "walist", data
	})

	assert.True(t, cli.Handle("   "))
	assert.True(t, cli.Handle("/say hi"))
	assert.True(t, cli.Handle(" walist "))
	assert.Equal(t, []string{"cmd:/say hi", "cmd:walist", "builder:walist"}, order)
	assert.Contains(t, out.String(), "(cmd) < /say hi")
	assert.Contains(t, out.String(), "(builder) < walist")

	// nobody caught it and no game client is connected
	out.Reset()
	assert.False(t, cli.Handle("hello"))
	assert.Contains(t, out.String(), "(game) < [console] hello")
	assert.Contains(t, out.String(), shield.ErrNotConnected.Error())

	cli.in = strings.NewReader("walist\n/tp\n")
	order = nil
	cli.Routine()
	assert.Equal(t, []string{"cmd:walist", "builder:walist", "cmd:/tp"}, order)

	out.Reset()
	send := cli.RegStringSender("game-chat")
	require.NotNil(t, send)
	assert.Nil(t, cli.RegStringSender("game-chat"))
	send(false, "<Steve> hi ")
	send(true, `{"a":1}`)
	assert.Equal(t, "(game-chat) Text> <Steve> hi\n(game-chat) Json> map[a:1]\n", out.String())
}

func TestStorage(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	s := (&Storage{}).New([]byte("root: " + root)).(*Storage)
	defer s.Close()
	assert.Equal(t, root, s.Root())
	assert.Equal(t, filepath.Join(root, "db", "journal.db"), s.DBPath("journal.db"))
	assert.DirExists(t, filepath.Join(root, "logs"))

	send := s.RegStringSender("builder")
	send(false, "pasted")
	s.Close()
	raw, err := os.ReadFile(filepath.Join(root, "logs", "builder.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "(builder) > pasted")
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	taskIO := offlineTaskIO()
	for name, c := range map[string]*config.PluginSystemConfig{
		"version":  {Version: "1.0.0"},
		"unknown":  {Version: "0.0.0", Plugins: []config.PluginConfig{{Name: "nope", File: "internal"}}},
		"external": {Version: "0.0.0", Plugins: []config.PluginConfig{{Name: "ask_for_op", File: "plugin.so"}}},
		"require":  {Version: "0.0.0", Plugins: []config.PluginConfig{{Name: "game_chat", File: "internal", Require: []string{"cli_interface"}}}},
	} {
		t.Run(name, func(t *testing.T) {
			closeFn, err := Load(taskIO, c)
			assert.Error(t, err)
			assert.Nil(t, closeFn)
		})
	}
}

func TestPoolHasEveryPlugin(t *testing.T) {
	for _, name := range []string{"storage", "cli_interface", "ask_for_op", "game_chat", "send_cmd_line", "journal", "builder"} {
		p, ok := Pool()[name]
		require.True(t, ok, name)
		assert.NotNil(t, p())
	}
}
