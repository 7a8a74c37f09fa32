package plugins

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

type StorageConfig struct {
	Root string `yaml:"root"`
	Logs string `yaml:"logs"`
	DB   string `yaml:"db"`
}

type Storage struct {
	root    string
	logRoot string
	dbRoot  string
	mu      sync.Mutex
	closeFn []func()
}

func (s *Storage) New(config []byte) define.Plugin {
	storageConfig := &StorageConfig{}
	err := yaml.Unmarshal(config, storageConfig)
	if err != nil {
		panic(err)
	}
	if storageConfig.Root == "" {
		storageConfig.Root = "data"
	}
	if storageConfig.Logs == "" {
		storageConfig.Logs = path.Join(storageConfig.Root, "logs")
	}
	if storageConfig.DB == "" {
		storageConfig.DB = path.Join(storageConfig.Root, "db")
	}
	return s.initStorage(storageConfig)
}

func (s *Storage) Routine() {

}

func (s *Storage) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	return s
}

func (s *Storage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.closeFn {
		fn()
	}
	s.closeFn = nil
}

func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) DBPath(name string) string {
	return path.Join(s.dbRoot, name)
}

func (s *Storage) RegStringSender(source string) func(isJson bool, data string) {
	fileName := path.Join(s.logRoot, source) + ".log"
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		panic(fmt.Sprintf("Storage-Create: cannot create %v (%v)", fileName, err))
	}
	s.mu.Lock()
	s.closeFn = append(s.closeFn, func() {
		logFile.Close()
	})
	s.mu.Unlock()
	log_ := log.New(logFile, "", log.Ldate|log.Ltime)
	return func(isJson bool, data string) {
		if isJson {
			var anyData interface{}
			err := json.Unmarshal([]byte(data), &anyData)
			if err == nil {
				log_.Printf("(%v) Json> %v", source, anyData)
			} else {
				log_.Printf("(%v) BrokenJson(%v)> %v", source, err, data)
			}
		} else {
			log_.Printf("(%v) > %v", source, data)
		}
	}
}

func (s *Storage) initStorage(config *StorageConfig) *Storage {
	for _, dir := range []string{config.Root, config.Logs, config.DB} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(fmt.Sprintf("Main-InitStorage: cannot create %v (%v)", dir, err))
		}
	}
	return &Storage{root: config.Root, logRoot: config.Logs, dbRoot: config.DB,
		closeFn: make([]func(), 0)}
}
