package shader

import (
	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/host"
)

// Program is a linked fisheye program on a host GPU.
type Program struct {
	ID    host.ProgramID
	Entry string
	// Reflection of the source the program was built from.
	Reflection Reflection
}

// Build compiles the vertex stage and the fragment entry for mode from
// source, then links them. Failures are *fisheye.ShaderError values wrapping
// fisheye.ErrShaderCompile or fisheye.ErrShaderLink with the host log.
func Build(gpu host.GPU, source string, mode Mode) (*Program, error) {
	entry := mode.Entry()
	log := fisheye.Logger()

	vs, err := gpu.CompileShader(host.StageVertex, EntryVertex, source)
	if err != nil {
		return nil, &fisheye.ShaderError{Stage: "vertex", Entry: EntryVertex, Log: err.Error(), Err: fisheye.ErrShaderCompile}
	}
	defer gpu.DeleteShader(vs)

	fs, err := gpu.CompileShader(host.StageFragment, entry, source)
	if err != nil {
		return nil, &fisheye.ShaderError{Stage: "fragment", Entry: entry, Log: err.Error(), Err: fisheye.ErrShaderCompile}
	}
	defer gpu.DeleteShader(fs)

	id, err := gpu.LinkProgram(vs, fs)
	if err != nil {
		return nil, &fisheye.ShaderError{Stage: "link", Entry: entry, Log: err.Error(), Err: fisheye.ErrShaderLink}
	}

	p := &Program{ID: id, Entry: entry, Reflection: Reflect(source)}
	log.Debug("fisheye: program linked", "program", id, "entry", entry, "uniforms", p.Reflection.Names())
	return p, nil
}

// Release deletes the program from the GPU. It is safe on a nil program.
func (p *Program) Release(gpu host.GPU) {
	if p == nil || p.ID == 0 {
		return
	}
	gpu.DeleteProgram(p.ID)
	p.ID = 0
}
