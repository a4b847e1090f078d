package halshader

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fisheye/shader"
)

// fakeModule stands in for a driver shader module.
type fakeModule struct {
	hal.ShaderModule
	label string
}

// fakeDevice records shader module lifetimes.
type fakeDevice struct {
	createErr error
	created   []*hal.ShaderModuleDescriptor
	destroyed int
}

func (d *fakeDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.created = append(d.created, desc)
	return &fakeModule{label: desc.Label}, nil
}

func (d *fakeDevice) DestroyShaderModule(hal.ShaderModule) {
	d.destroyed++
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
// Methods New never calls come from the embedded interface.
type mockProvider struct {
	gpucontext.DeviceProvider
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// wrongHALProvider exposes HalDevice but with an unrelated type.
type wrongHALProvider struct {
	mockProvider
}

func (w *wrongHALProvider) HalDevice() any { return "not a device" }

func TestNewRejectsProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"nil", nil},
		{"no HAL", &mockProvider{}},
		{"wrong HAL type", &wrongHALProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.provider); !errors.Is(err, ErrNoHALDevice) {
				t.Errorf("New() = %v, want ErrNoHALDevice", err)
			}
		})
	}
}

func compileOrSkip(t *testing.T, v *Validator, label string) error {
	t.Helper()
	err := v.Validate(label, shader.Source)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
	}
	return err
}

func TestValidateCreatesModule(t *testing.T) {
	dev := &fakeDevice{}
	v := NewForDevice(dev)
	if err := compileOrSkip(t, v, "fisheye"); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(dev.created) != 1 || v.Modules() != 1 {
		t.Fatalf("created %d modules, live %d, want 1", len(dev.created), v.Modules())
	}
	desc := dev.created[0]
	if desc.Label != "fisheye" || len(desc.Source.SPIRV) == 0 || desc.Source.SPIRV[0] != 0x07230203 {
		t.Errorf("descriptor = %q with %d words", desc.Label, len(desc.Source.SPIRV))
	}

	v.Release()
	if dev.destroyed != 1 || v.Modules() != 0 {
		t.Errorf("destroyed=%d live=%d after Release", dev.destroyed, v.Modules())
	}
	v.Release()
	if dev.destroyed != 1 {
		t.Error("second Release destroyed again")
	}
}

func TestValidateDeviceError(t *testing.T) {
	boom := errors.New("driver rejected module")
	dev := &fakeDevice{createErr: boom}
	v := NewForDevice(dev)
	if err := compileOrSkip(t, v, "fisheye"); !errors.Is(err, boom) {
		t.Errorf("Validate() = %v, want %v", err, boom)
	}
	if v.Modules() != 0 {
		t.Errorf("Modules() = %d, want 0", v.Modules())
	}
}

func TestValidateRejectsBadSource(t *testing.T) {
	dev := &fakeDevice{}
	v := NewForDevice(dev)
	if err := v.Validate("broken", "fn broken( {"); err == nil {
		t.Error("Validate() accepted malformed WGSL")
	}
	if len(dev.created) != 0 {
		t.Error("module created for malformed WGSL")
	}
}
