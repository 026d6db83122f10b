package record

import "golang.org/x/exp/slices"

type Privilege string

const (
	PrivilegeViewImages   Privilege = "VIEW_IMAGES"
	PrivilegeDownloadPDF  Privilege = "DOWNLOAD_PDF"
	PrivilegeDownloadEPUB Privilege = "DOWNLOAD_EPUB"
)

// Access decides which privileges are granted on a record depending on its access conditions
type Access struct {
	open []string
	pdf  []string
}

// NewAccess returns an Access granting everything on records whose conditions are all in
// open. Conditions in pdf also grant PrivilegeDownloadPDF.
func NewAccess(open, pdf []string) Access {
	return Access{open: open, pdf: pdf}
}

// Granted reports whether privilege is granted on rec. Admins are granted everything.
func (a Access) Granted(rec Record, privilege Privilege, admin bool) bool {
	if admin {
		return true
	}
	for _, condition := range rec.AccessConditions {
		if slices.Contains(a.open, condition) {
			continue
		}
		if privilege == PrivilegeDownloadPDF && slices.Contains(a.pdf, condition) {
			continue
		}
		return false
	}
	return true
}

func (a Access) PDF(rec Record, admin bool) bool {
	return a.Granted(rec, PrivilegeDownloadPDF, admin)
}

// EPUB checks PrivilegeDownloadPDF, not PrivilegeDownloadEPUB.
// TODO: confirm with product owners whether EPUB downloads need their own condition list.
func (a Access) EPUB(rec Record, admin bool) bool {
	return a.Granted(rec, PrivilegeDownloadPDF, admin)
}
