package transcript

import "strings"

// The project directory encoding collapses both '/' and '.' to '-', so
// domain names like github.com become indistinguishable from path
// segments. These tables restore well-known domains before the generic
// '-' -> '/' rewrite. Order matters: multi-label internal domains are
// checked before the public two-label ones.
var domainReplacements = [][2]string{
	{"-tech-pepabo-com-", "/tech.pepabo.com/"},
	{"-git-pepabo-com-", "/git.pepabo.com/"},
	{"-github-com-", "/github.com/"},
	{"-gitlab-com-", "/gitlab.com/"},
	{"-bitbucket-org-", "/bitbucket.org/"},
}

// domainSuffixes handles the same domains when the encoded name ends with
// one (the repo directory itself is the domain's last segment).
var domainSuffixes = [][2]string{
	{"-tech-pepabo-com", "/tech.pepabo.com"},
	{"-git-pepabo-com", "/git.pepabo.com"},
	{"-github-com", "/github.com"},
	{"-gitlab-com", "/gitlab.com"},
	{"-bitbucket-org", "/bitbucket.org"},
}

// domainPrefixes handles a domain at the very start of the encoded name,
// where the interior tokens cannot match because the leading separator has
// already been stripped.
var domainPrefixes = [][2]string{
	{"tech-pepabo-com", "tech.pepabo.com"},
	{"git-pepabo-com", "git.pepabo.com"},
	{"github-com", "github.com"},
	{"gitlab-com", "gitlab.com"},
	{"bitbucket-org", "bitbucket.org"},
}

// DecodeProjectPath reverses the directory-name encoding used under the
// projects root. Recovery is best-effort: paths whose segments contain
// literal '-' cannot be reconstructed exactly. Callers should prefer the
// path recorded in sessions-index.json when one exists.
func DecodeProjectPath(dirName string) string {
	if dirName == "" {
		return ""
	}

	encoded := strings.TrimPrefix(dirName, "-")

	for _, r := range domainPrefixes {
		if encoded == r[0] {
			encoded = r[1]
			break
		}
		if strings.HasPrefix(encoded, r[0]+"-") {
			encoded = r[1] + "/" + encoded[len(r[0])+1:]
			break
		}
	}
	for _, r := range domainReplacements {
		encoded = strings.ReplaceAll(encoded, r[0], r[1])
	}
	for _, r := range domainSuffixes {
		if strings.HasSuffix(encoded, r[0]) {
			encoded = encoded[:len(encoded)-len(r[0])] + r[1]
			break
		}
	}

	return "/" + strings.ReplaceAll(encoded, "-", "/")
}
