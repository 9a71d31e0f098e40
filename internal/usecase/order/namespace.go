package order

import "strings"

// ServiceTypeLiveSight is the only service type this deployment manages.
const ServiceTypeLiveSight = "livesight"

// ExtractServiceTypeID pulls the live-sight id out of a dot-separated
// namespace, e.g. "arplanets.livesight.ls_123" -> "ls_123". Returns ""
// when the namespace carries no livesight segment or no id after it.
func ExtractServiceTypeID(namespace string) string {
	segments := strings.Split(namespace, ".")
	for i, segment := range segments {
		if segment == ServiceTypeLiveSight && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}
