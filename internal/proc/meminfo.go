package proc

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// TotalMemory returns the physical memory installed on the machine in bytes.
func TotalMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Total, nil
}
