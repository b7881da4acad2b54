package data

type Board struct {
	Name string `json:"name" yaml:"name"`
}

type ToolDependency struct {
	Packager string `json:"packager" yaml:"packager"`
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
}

// Platform describes a board support package as it appears in the
// platforms list of a board manager index. Field order is the order the
// keys are written in.
type Platform struct {
	Name            string `json:"name" yaml:"name"`
	Architecture    string `json:"architecture" yaml:"architecture"`
	Version         string `json:"version" yaml:"version"`
	Category        string `json:"category" yaml:"category"`
	URL             string `json:"url" yaml:"url"`
	ArchiveFileName string `json:"archiveFileName" yaml:"archiveFileName"`
	Checksum        string `json:"checksum" yaml:"checksum"`
	Size            string `json:"size" yaml:"size"`

	Boards            []Board          `json:"boards" yaml:"boards"`
	ToolsDependencies []ToolDependency `json:"toolsDependencies" yaml:"toolsDependencies"`
}
