package journal

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

// Plugin exposes a Journal to other plugins, stored under the storage plugin's db root.
type Plugin struct {
	*Journal
	DBName        string `yaml:"db_name"`
	StoragePlugin string `yaml:"storage_plugin"`
}

func (p *Plugin) New(config []byte) define.Plugin {
	p.DBName = "journal.db"
	p.StoragePlugin = "storage"
	if err := yaml.Unmarshal(config, p); err != nil {
		panic(err)
	}
	return p
}

func (p *Plugin) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	storage, ok := collaborationContext[p.StoragePlugin].(define.StorageInterface)
	if !ok {
		panic(fmt.Sprintf("journal: plugin %v is not a storage", p.StoragePlugin))
	}
	j, err := Open(storage.DBPath(p.DBName))
	if err != nil {
		panic(fmt.Sprintf("journal: cannot open %v (%v)", p.DBName, err))
	}
	p.Journal = j
	return p
}

func (p *Plugin) Routine() {

}

func (p *Plugin) Close() {
	if p.Journal != nil {
		p.Journal.Close()
	}
}
