//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// SetDeviceProvider switches the backend to a shared GPU device from
// an external provider (e.g. a gogpu window) instead of opening its
// own. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue; gpucontext HAL providers do.
//
// Must be called before Init. The shared device is never destroyed by
// Close; its owner keeps that responsibility.
func (b *Backend) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return fmt.Errorf("wgpu: backend already initialized")
	}
	b.device = device
	b.queue = queue
	b.externalDevice = true
	b.adapterName = "shared device"
	return nil
}

// acquireDevice opens the HAL instance, picks an adapter and opens the
// device and queue. A device adopted through SetDeviceProvider is used
// as-is. Discrete GPUs win over integrated ones; anything beats
// nothing.
func (b *Backend) acquireDevice() error {
	if b.externalDevice {
		return nil
	}
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	selected := pickAdapter(adapters)
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.adapterName = selected.Info.Name
	return nil
}

// pickAdapter prefers discrete over integrated GPUs and falls back to
// the first adapter reported.
func pickAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			return &adapters[i]
		}
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// releaseDevice destroys the device and instance. Shared devices are
// detached, not destroyed.
func (b *Backend) releaseDevice() {
	if b.device != nil {
		if !b.externalDevice {
			b.device.Destroy()
		}
		b.device = nil
		b.queue = nil
	}
	b.externalDevice = false
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
