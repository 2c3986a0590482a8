package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DevicePath",
			got:      DevicePath("data", "logs"),
			expected: "/dev/mapper/data-logs",
		},
		{
			name:     "DevicePath escapes hyphens",
			got:      DevicePath("vg-data", "db-logs"),
			expected: "/dev/mapper/vg--data-db--logs",
		},
		{
			name:     "DeviceKey",
			got:      DeviceKey("data", "logs"),
			expected: "_dev_mapper_data-logs",
		},
		{
			name:     "PhysicalVolumes",
			got:      PhysicalVolumes("data"),
			expected: "pvcreate-data",
		},
		{
			name:     "VolumeGroup",
			got:      VolumeGroup("data"),
			expected: "vgcreate-data",
		},
		{
			name:     "LogicalVolume",
			got:      LogicalVolume("data", "logs"),
			expected: "lvcreate-_dev_mapper_data-logs",
		},
		{
			name:     "Format",
			got:      Format("data", "logs"),
			expected: "mkfs-_dev_mapper_data-logs",
		},
		{
			name:     "Mount",
			got:      Mount("data", "logs"),
			expected: "mount-_dev_mapper_data-logs",
		},
		{
			name:     "Directory",
			got:      Directory("/mnt/logs"),
			expected: "directory-/mnt/logs",
		},
		{
			name:     "EBSVolume",
			got:      EBSVolume("db"),
			expected: "ebs-db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestDeviceKey_Injective(t *testing.T) {
	pairs := [][2]string{
		{"a-b", "c"},
		{"a", "b-c"},
		{"a", "b"},
		{"a_b", "c"},
		{"a", "b_c"},
		{"ab", "c"},
		{"a", "bc"},
		{"a--b", "c"},
		{"a-", "b"},
		{"a--", "b"},
	}

	seen := make(map[string][2]string)
	for _, p := range pairs {
		key := DeviceKey(p[0], p[1])
		if prev, ok := seen[key]; ok {
			t.Fatalf("DeviceKey(%q, %q) collides with DeviceKey(%q, %q): %q", p[0], p[1], prev[0], prev[1], key)
		}
		seen[key] = p
	}
}
