package vec

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatVec3 writes v as "x,y,z" using the shortest representation that
// parses back to the same float64.
func FormatVec3(v Vec3) string {
	return joinFloats(v.X, v.Y, v.Z)
}

// FormatQuat writes q as "x,y,z,w".
func FormatQuat(q Quat) string {
	return joinFloats(q.X, q.Y, q.Z, q.W)
}

// ParseVec3 parses the "x,y,z" form written by FormatVec3.
func ParseVec3(s string) (Vec3, error) {
	f, err := splitFloats(s, 3)
	if err != nil {
		return Vec3{}, fmt.Errorf("parse vec3 %q: %w", s, err)
	}
	return Vec3{f[0], f[1], f[2]}, nil
}

// ParseQuat parses the "x,y,z,w" form written by FormatQuat.
func ParseQuat(s string) (Quat, error) {
	f, err := splitFloats(s, 4)
	if err != nil {
		return Quat{}, fmt.Errorf("parse quat %q: %w", s, err)
	}
	return Quat{f[0], f[1], f[2], f[3]}, nil
}

func joinFloats(vals ...float64) string {
	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

func splitFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
