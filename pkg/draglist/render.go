package draglist

import (
	"github.com/vango-dev/draglist/pkg/reorder"
	"github.com/vango-dev/draglist/pkg/vdom"
)

// Render builds the list markup for the current order and drag state.
func (l *List[T]) Render() *vdom.VNode {
	items := l.collection.Items()
	return vdom.El(l.tag,
		vdom.ID(l.id),
		vdom.Class("draglist"),
		vdom.Data("draglist", l.id),
		vdom.Role("list"),
		vdom.OnDrop(vdom.PreventDefault(l.Drop)),
		vdom.OnDragOver(vdom.PreventDefault(nil)),
		vdom.Range(items, func(item T, _ int) *vdom.VNode {
			return l.itemNode(item)
		}),
	)
}

func (l *List[T]) itemNode(item T) *vdom.VNode {
	key := l.key(item)
	class := reorder.Classify[T](item, l.state)

	var content *vdom.VNode
	if l.renderItem != nil {
		content = l.renderItem(item)
	} else {
		content = vdom.Text(key)
	}

	return vdom.El(l.itemTag,
		vdom.Key(key),
		vdom.Data("key", key),
		vdom.Data("preview", class.String()),
		vdom.Class("draglist-item", class.ClassName()),
		vdom.Role("listitem"),
		vdom.Draggable(),
		vdom.AriaGrabbed(class == reorder.Dragging),
		vdom.OnDragStart(func() { l.DragStart(item) }),
		vdom.OnDragEnd(func() { l.DragEnd(item) }),
		vdom.OnDragEnter(func() { l.DragEnter(item) }),
		vdom.OnDragLeave(func() { l.DragLeave(item) }),
		vdom.OnDragOver(vdom.PreventDefault(vdom.StopPropagation(nil))),
		content,
	)
}
