package data

// ToolSystem is a single host download of a tool. Checksum and Size are
// only written once the archive has been summed.
type ToolSystem struct {
	Host            string `json:"host" yaml:"host"`
	URL             string `json:"url" yaml:"url"`
	ArchiveFileName string `json:"archiveFileName" yaml:"archiveFileName"`
	Checksum        string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Size            string `json:"size,omitempty" yaml:"size,omitempty"`
}

type Tool struct {
	Name    string       `json:"name" yaml:"name"`
	Version string       `json:"version" yaml:"version"`
	Systems []ToolSystem `json:"systems" yaml:"systems"`
}
