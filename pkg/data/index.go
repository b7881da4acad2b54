package data

type Help struct {
	Online string `json:"online" yaml:"online"`
}

type Package struct {
	Name       string `json:"name" yaml:"name"`
	Maintainer string `json:"maintainer" yaml:"maintainer"`
	WebsiteURL string `json:"websiteURL" yaml:"websiteURL"`
	Email      string `json:"email" yaml:"email"`
	Help       Help   `json:"help" yaml:"help"`

	Platforms []*Platform `json:"platforms" yaml:"platforms"`
	Tools     []*Tool     `json:"tools" yaml:"tools"`
}

// Index is the top level document of a package_<name>_index.json feed.
type Index struct {
	Packages []*Package `json:"packages" yaml:"packages"`
}

// AddPlatform replaces the platform with the same architecture and
// version, or appends it.
func (p *Package) AddPlatform(pl *Platform) {
	for i, cur := range p.Platforms {
		if cur.Architecture == pl.Architecture && cur.Version == pl.Version {
			p.Platforms[i] = pl
			return
		}
	}

	p.Platforms = append(p.Platforms, pl)
}

// AddTool replaces the tool with the same name and version, or appends it.
func (p *Package) AddTool(t *Tool) {
	for i, cur := range p.Tools {
		if cur.Name == t.Name && cur.Version == t.Version {
			p.Tools[i] = t
			return
		}
	}

	p.Tools = append(p.Tools, t)
}

func (idx *Index) Lookup(name string) (*Package, bool) {
	for _, pkg := range idx.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}

	return nil, false
}

// Merge folds pkg into the index. An existing package of the same name
// takes pkg's maintainer details and gains its platforms and tools;
// entries already present keep their position.
func (idx *Index) Merge(pkg *Package) {
	cur, ok := idx.Lookup(pkg.Name)
	if !ok {
		idx.Packages = append(idx.Packages, pkg)
		return
	}

	cur.Maintainer = pkg.Maintainer
	cur.WebsiteURL = pkg.WebsiteURL
	cur.Email = pkg.Email
	cur.Help = pkg.Help

	if cur.Platforms == nil {
		cur.Platforms = []*Platform{}
	}

	if cur.Tools == nil {
		cur.Tools = []*Tool{}
	}

	for _, pl := range pkg.Platforms {
		cur.AddPlatform(pl)
	}

	for _, t := range pkg.Tools {
		cur.AddTool(t)
	}
}
