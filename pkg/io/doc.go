// Package io serializes a cinema graph to JSON and XML.
//
// # Overview
//
// Both encoders work from the tree produced by [resolve.Resolve], so they
// agree on which entities are embedded and which are referenced:
//
//   - Movies, users, directors, actors and comments are embedded where they
//     are owned.
//   - Favorite and watchlist entries are written as the movie title only.
//   - A comment's author is written as the username only.
//
// # JSON Format
//
// One object with keys in fixed order:
//
//	{
//	  "name": "Kinoteka",
//	  "catalog": [
//	    {
//	      "title": "Drive",
//	      "genre": "Criminal",
//	      "duration": 100,
//	      "description": "...",
//	      "release_year": 2011,
//	      "director": {"name": "Nicolas Winding Refn", "biography": "..."},
//	      "actors": [{"name": "Ryan Gosling", "biography": "..."}],
//	      "comments": [{"user": "Pashtet", "text": "Main character literally me"}]
//	    }
//	  ],
//	  "users": [
//	    {"username": "Pashtet", "email": "...", "favorite_list": ["Drive"], "watchlist": []}
//	  ]
//	}
//
// # XML Format
//
// A declaration-prefixed document rooted at Cinema. Identifying scalars are
// attributes, free text is element content, and every collection has a
// wrapper element:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<Cinema name="Kinoteka">
//	  <Catalog>
//	    <Movie title="Drive" genre="Criminal" duration="100" release_year="2011">
//	      <Description>...</Description>
//	      <Director name="Nicolas Winding Refn">...</Director>
//	      <Actors>
//	        <Actor name="Ryan Gosling">...</Actor>
//	      </Actors>
//	      <Comments>
//	        <Comment user="Pashtet">Main character literally me</Comment>
//	      </Comments>
//	    </Movie>
//	  </Catalog>
//	  <Users>
//	    <User username="Pashtet" email="...">
//	      <FavoriteList>
//	        <Movie title="Drive"></Movie>
//	      </FavoriteList>
//	      <Watchlist></Watchlist>
//	    </User>
//	  </Users>
//	</Cinema>
//
// # Writing
//
// [ExportJSON] and [ExportXML] build the whole document in memory first. An
// invalid graph (for example a movie without a director) fails before the
// filesystem is touched. The document is then written to a temporary file
// next to the destination and renamed into place, so a failed write never
// leaves a partial file at path.
//
// # Concurrency
//
// Encoding only reads the graph. Callers must not mutate the graph while an
// encode is in progress.
//
// [resolve.Resolve]: github.com/matzehuels/cinegraph/pkg/resolve.Resolve
package io
