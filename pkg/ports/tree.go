package ports

import "github.com/aretw0/ribs/pkg/domain"

// ParentNode is the part of the host node tree the pool drives.
// Attaching something already attached, or detaching something that is not, is a no-op.
type ParentNode interface {
	AttachChildNode(child domain.Node)
	DetachChildNode(child domain.Node)
	AttachChildView(child domain.Node)
	DetachChildView(child domain.Node)

	IsChildAttached(child domain.Node) bool
	IsChildViewAttached(child domain.Node) bool
}
