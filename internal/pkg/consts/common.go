package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

// MediaRoot prefix of every stored upload key
const MediaRoot = "media"

// UploadEntities folders an admin upload may target
var UploadEntities = map[string]bool{
	"posts":      true,
	"videos":     true,
	"categories": true,
	"users":      true,
}

const (
	LatestNewsLimit          = 15
	LatestAnnouncementsLimit = 4
	LatestVideosLimit        = 4
)
