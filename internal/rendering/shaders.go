package rendering

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

//go:embed all:shaders
var __shaders__ embed.FS

// Embedded returns the built-in shader tree, one directory per program.
func Embedded() fs.FS {
	sub, err := fs.Sub(__shaders__, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}

type shader struct {
	Handle     uint32
	Type       uint32
	SourceCode string
}

// Shaders is a registry of GL programs built from directories of
// "<seq>.<type>.glsl" files. The directory name is the program name.
type Shaders struct {
	sources  map[string][]*shader
	programs map[string]uint32
}

func NewShaders() *Shaders {
	return &Shaders{
		sources:  make(map[string][]*shader),
		programs: make(map[string]uint32),
	}
}

// Load reads every program directory in fsys. Directories without shader
// files are skipped.
func (shaders *Shaders) Load(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		return shaders.loadDirectory(fsys, name, entry, err)
	})
}

// Sources lists the loaded, not yet compiled, program names.
func (shaders *Shaders) Sources() []string {
	names := make([]string, 0, len(shaders.sources))
	for name := range shaders.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stages returns the shader types of program in link order.
func (shaders *Shaders) Stages(program string) []uint32 {
	sources := shaders.sources[program]
	stages := make([]uint32, len(sources))
	for i, shader := range sources {
		stages[i] = shader.Type
	}
	return stages
}

// Compile builds and links every loaded program. It needs a current GL
// context. Shader objects are released once linked.
func (shaders *Shaders) Compile() error {
	if err := shaders.build(); err != nil {
		return err
	}
	if err := shaders.link(); err != nil {
		return err
	}

	for _, sources := range shaders.sources {
		for _, shader := range sources {
			gl.DeleteShader(shader.Handle)
			shader.Handle = 0
		}
	}

	shaders.sources = make(map[string][]*shader)
	return nil
}

func (shaders *Shaders) Program(name string) (uint32, bool) {
	program, ok := shaders.programs[name]
	return program, ok
}

// Use makes program current. It reports false for unknown names.
func (shaders *Shaders) Use(name string) bool {
	program, ok := shaders.programs[name]
	if !ok {
		return false
	}
	gl.UseProgram(program)
	return true
}

func (shaders *Shaders) Delete() {
	for name, program := range shaders.programs {
		gl.DeleteProgram(program)
		delete(shaders.programs, name)
	}
}

func (shaders *Shaders) loadDirectory(fsys fs.FS, dir string, entry fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return nil
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	tempShaders := make(map[int]*shader)
	maxSeq := -1
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".glsl" {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return err
		}

		p := strings.Split(name, ".")
		if len(p) != 3 {
			return fmt.Errorf("invalid shader file name: %s", name)
		}

		var shaderType uint32
		switch p[1] {
		case "vertex":
			shaderType = gl.VERTEX_SHADER
		case "fragment":
			shaderType = gl.FRAGMENT_SHADER
		case "geometry":
			shaderType = gl.GEOMETRY_SHADER
		default:
			return fmt.Errorf("unknown shader type: %s", p[1])
		}

		seq, err := strconv.Atoi(p[0])
		if err != nil {
			return fmt.Errorf("invalid shader sequence number: %s", p[0])
		}
		if seq < 0 {
			return fmt.Errorf("shader sequence number must be non-negative: %d", seq)
		}
		if _, ok := tempShaders[seq]; ok {
			return fmt.Errorf("duplicate shader sequence number: %d in directory: %s", seq, dir)
		}

		tempShaders[seq] = &shader{
			Type:       shaderType,
			SourceCode: string(data),
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	if maxSeq == -1 {
		return nil
	}

	finalShaders := make([]*shader, maxSeq+1)
	for i := 0; i <= maxSeq; i++ {
		shader, ok := tempShaders[i]
		if !ok {
			return fmt.Errorf("missing shader with sequence number: %d in directory: %s", i, dir)
		}
		finalShaders[i] = shader
	}

	shaders.sources[path.Base(dir)] = finalShaders
	return nil
}

func (shaders *Shaders) build() error {
	for name, sources := range shaders.sources {
		for _, shader := range sources {
			shader.Handle = gl.CreateShader(shader.Type)
			if shader.Handle == 0 {
				return fmt.Errorf("failed to create shader handle for %s", name)
			}

			csources, free := gl.Strs(shader.SourceCode + "\x00")
			gl.ShaderSource(shader.Handle, 1, csources, nil)
			free()
			gl.CompileShader(shader.Handle)

			var status int32
			gl.GetShaderiv(shader.Handle, gl.COMPILE_STATUS, &status)
			if status == gl.FALSE {
				var logLength int32
				gl.GetShaderiv(shader.Handle, gl.INFO_LOG_LENGTH, &logLength)
				message := infoLog(logLength, func(buf *uint8) {
					gl.GetShaderInfoLog(shader.Handle, logLength, nil, buf)
				})

				gl.DeleteShader(shader.Handle)
				shader.Handle = 0
				return fmt.Errorf("failed to compile shader %s:\n%s", name, message)
			}
		}
	}
	return nil
}

func (shaders *Shaders) link() error {
	for name, sources := range shaders.sources {
		program := gl.CreateProgram()
		for _, shader := range sources {
			gl.AttachShader(program, shader.Handle)
		}
		gl.LinkProgram(program)

		var status int32
		gl.GetProgramiv(program, gl.LINK_STATUS, &status)
		if status == gl.FALSE {
			var logLength int32
			gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
			message := infoLog(logLength, func(buf *uint8) {
				gl.GetProgramInfoLog(program, logLength, nil, buf)
			})

			gl.DeleteProgram(program)
			return fmt.Errorf("failed to link program %s:\n%s", name, message)
		}
		shaders.programs[name] = program
	}
	return nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return ""
	}
	logBuffer := make([]byte, length)
	read(&logBuffer[0])
	return gl.GoStr(&logBuffer[0])
}
