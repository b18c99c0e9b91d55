package cms

// Query templates. Parameters ($type, $slug, $id) are bound by the API, never
// interpolated. Drafts live under the "drafts." ID path and are excluded.
const (
	listByTypeQuery = `*[_type == $type && !(_id in path("drafts.**"))] | order(coalesce(publishedAt, _updatedAt) desc)`

	bySlugQuery = `*[_type == $type && slug.current == $slug && !(_id in path("drafts.**"))][0]`

	byIDQuery = `*[_id == $id][0]`
)
