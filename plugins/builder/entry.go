package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	bdefine "github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/worker"
	"github.com/VincentZyu233/woodenaxe/task"
	world "github.com/VincentZyu233/woodenaxe/world/define"
)

type CmdSource struct {
	RegName string `yaml:"reg_name"`
	Plugin  string `yaml:"plugin"`
	Prefix  string `yaml:"prefix"`
}

type command struct {
	requester string
	cmds      []string
}

type Builder struct {
	Sources            []CmdSource `yaml:"sources"`
	LogName            string      `yaml:"log_name"`
	LogPlugin          string      `yaml:"log_plugin"`
	JournalPlugin      string      `yaml:"journal_plugin"`
	StoragePlugin      string      `yaml:"storage_plugin"`
	Operator           string      `yaml:"operator"`
	SchematicDir       string      `yaml:"schematic_dir"`
	DefaultExtension   string      `yaml:"default_extension"`
	ProgressEvery      int         `yaml:"progress_every"`
	PermissiveRegistry bool        `yaml:"permissive_registry"`
	CommandTimeout     int         `yaml:"command_timeout_seconds"`
	taskIO             *task.TaskIO
	log                func(isJson bool, data string)
	processor          *Processor
	queue              chan command
	ctx                context.Context
	cancel             context.CancelFunc
}

func (o *Builder) New(config []byte) define.Plugin {
	o.Sources = make([]CmdSource, 0)
	o.LogName = ""
	o.LogPlugin = "storage"
	o.StoragePlugin = "storage"
	o.Operator = "operator"
	o.DefaultExtension = ".schem"
	o.ProgressEvery = bdefine.ProgressLayers
	o.CommandTimeout = 5
	err := yaml.Unmarshal(config, o)
	if err != nil {
		panic(err)
	}
	o.queue = make(chan command, 16)
	o.ctx, o.cancel = context.WithCancel(context.Background())
	return o
}

func (o *Builder) Compact(cmd string) []string {
	return strings.Fields(cmd)
}

func (o *Builder) onNewText(prefix string, sender string, data string) (bool, string) {
	data = strings.TrimSpace(data)
	if !strings.HasPrefix(data, prefix) {
		// fall through
		return false, data
	}
	cmds := o.Compact(strings.TrimPrefix(data, prefix))
	if len(cmds) == 0 || !IsCommand(cmds[0]) {
		return false, data
	}
	//catch
	requester := sender
	if requester == "" {
		requester = o.Operator
	}
	select {
	case o.queue <- command{requester: requester, cmds: cmds}:
	default:
		o.processor.say(requester, "Builder busy, try again later")
	}
	return true, ""
}

func (o *Builder) reply(requester string, msg string) {
	if requester == o.Operator {
		fmt.Println("Builder: " + msg)
		return
	}
	if err := o.taskIO.TalkTo(requester, msg); err != nil {
		fmt.Printf("Builder: to %v: %v (%v)\n", requester, msg, err)
	}
}

func (o *Builder) locate(ctx context.Context, player string) (bdefine.Pos, bdefine.Dimension, error) {
	if player == o.Operator {
		return bdefine.Pos{}, 0, fmt.Errorf("console has no position")
	}
	target, err := o.taskIO.QueryTarget(ctx, player)
	if err != nil {
		return bdefine.Pos{}, 0, err
	}
	p := target.BlockPos()
	return bdefine.Pos{bdefine.PE(p[0]), bdefine.PE(p[1]), bdefine.PE(p[2])}, bdefine.Dimension(target.Dimension), nil
}

func (o *Builder) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.taskIO = taskIO
	if o.LogName != "" {
		o.log = collaborationContext[o.LogPlugin].(define.StringWriteInterface).RegStringSender(o.LogName)
	}
	if o.SchematicDir == "" {
		root := "data"
		if storage, ok := collaborationContext[o.StoragePlugin].(define.StorageInterface); ok {
			root = storage.Root()
		}
		o.SchematicDir = filepath.Join(root, "schematics")
	}
	if err := os.MkdirAll(o.SchematicDir, 0o755); err != nil {
		panic(fmt.Sprintf("Builder: cannot create %v (%v)", o.SchematicDir, err))
	}

	timeout := time.Duration(o.CommandTimeout) * time.Second
	registry := world.DefaultRegistry()
	if o.PermissiveRegistry {
		registry = registry.Permissive()
	}
	placer := NewPlacer(worker.NewCommandWorker(o.ctx, taskIO, timeout), registry)
	placer.ProgressEvery = o.ProgressEvery

	o.processor = NewProcessor(o.SchematicDir, placer)
	o.processor.DefaultExtension = o.DefaultExtension
	o.processor.Timeout = timeout
	o.processor.reply = o.reply
	o.processor.locate = o.locate
	o.processor.log = o.log
	if o.JournalPlugin != "" {
		j, ok := collaborationContext[o.JournalPlugin].(Journal)
		if !ok {
			panic(fmt.Sprintf("Builder: plugin %v is not a journal", o.JournalPlugin))
		}
		o.processor.journal = j
	}

	for _, s := range o.Sources {
		s := s
		src := collaborationContext[s.Plugin].(define.StringReadInterface)
		src.RegStringInterceptor(s.RegName, func(sender string, data string) (bool, string) {
			return o.onNewText(s.Prefix, sender, data)
		})
	}
	return o
}

// Routine runs queued commands one at a time, so commands of one requester never overlap
func (o *Builder) Routine() {
	for {
		select {
		case <-o.ctx.Done():
			return
		case c := <-o.queue:
			o.processor.Process(c.requester, c.cmds)
		}
	}
}

func (o *Builder) Close() {
	o.cancel()
}
