package assetrepo

import "errors"

var ErrNotFound = errors.New("banner asset not found")

// ImageFormat is the extension and format tag of every banner asset.
const ImageFormat = "png"
