package define

import "github.com/VincentZyu233/woodenaxe/task"

type Plugin interface {
	New(config []byte) Plugin
	Inject(taskIO *task.TaskIO, collaborationContext map[string]Plugin) Plugin
	Routine()
	Close()
}

type StringWriteInterface interface {
	RegStringSender(name string) func(isJson bool, data string)
}

// InterceptFn receives a line and who said it; sender is empty for console input.
// Returning true stops the line from reaching later interceptors.
type InterceptFn func(sender string, data string) (bool, string)

type StringReadInterface interface {
	RegStringInterceptor(name string, intercept InterceptFn) int
	RemoveStringInterceptor(interceptID int)
}

type StorageInterface interface {
	Root() string
	DBPath(name string) string
}
