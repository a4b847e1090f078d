// Package halshader validates the fisheye program on a native GPU.
//
// The WGSL source is compiled to SPIR-V with naga and turned into a shader
// module on a wgpu HAL device, so driver-side rejections surface when the
// overlay is enabled rather than on the first frame. Plug it into the
// compositor with overlay.WithValidator.
package halshader

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/overlay"
	"github.com/gogpu/fisheye/shader"
)

// ErrNoHALDevice is returned when a device provider does not expose a
// wgpu HAL device.
var ErrNoHALDevice = errors.New("halshader: provider does not expose a hal.Device")

// Device is the part of hal.Device the validator needs.
type Device interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
}

// Validator creates shader modules on a HAL device and keeps them until
// Release.
type Validator struct {
	device  Device
	modules []hal.ShaderModule
}

// New returns a validator for the device shared by provider.
//
// The provider must expose HalDevice() any returning a hal.Device, which is
// how gogpu applications hand their device to libraries.
func New(provider gpucontext.DeviceProvider) (*Validator, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrNoHALDevice)
	}
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHALDevice, hp.HalDevice())
	}
	return NewForDevice(device), nil
}

// NewForDevice returns a validator using device directly.
func NewForDevice(device Device) *Validator {
	return &Validator{device: device}
}

// Validate compiles source to SPIR-V and creates a shader module from it.
func (v *Validator) Validate(label, source string) error {
	spirv, err := shader.ToSPIRV(source)
	if err != nil {
		return err
	}
	module, err := v.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return fmt.Errorf("halshader: create shader module %q: %w", label, err)
	}
	v.modules = append(v.modules, module)
	fisheye.Logger().Debug("halshader: module created", "label", label, "words", len(spirv))
	return nil
}

// Modules returns the number of live shader modules.
func (v *Validator) Modules() int {
	return len(v.modules)
}

// Release destroys every module created by Validate.
func (v *Validator) Release() {
	for _, m := range v.modules {
		if m != nil {
			v.device.DestroyShaderModule(m)
		}
	}
	v.modules = nil
}

var _ overlay.Validator = (*Validator)(nil)
