package draglist

// DefaultCSS styles the preview classes with an insertion line on the
// hovered item.
const DefaultCSS = `.draglist{list-style:none;margin:0;padding:0}
.draglist-item{padding:.5rem .75rem;margin:2px 0;border:1px solid #ddd;border-radius:4px;background:#fff;cursor:grab}
.draglist-item.dragging{opacity:.4}
.draglist-item.dragging-over__before{box-shadow:0 -3px 0 0 #3b82f6}
.draglist-item.dragging-over__after{box-shadow:0 3px 0 0 #3b82f6}`
