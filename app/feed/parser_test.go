package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Robot Weekly</title>
    <link>https://example.com</link>
    <description>Robots</description>
    <item>
      <title>  Humanoid robot walks  </title>
      <link>https://example.com/item1</link>
      <description><![CDATA[<p>A <b>humanoid</b> robot &amp; its team.</p>]]></description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <author>test@example.com (Test Author)</author>
    </item>
    <item>
      <title>Second item</title>
      <link>https://example.com/item2</link>
      <description>Plain description</description>
    </item>
  </channel>
</rss>`

	entries, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	entry := entries[0]
	if entry.Title != "Humanoid robot walks" {
		t.Errorf("Expected trimmed title, got: %q", entry.Title)
	}
	if entry.Link != "https://example.com/item1" {
		t.Errorf("Expected link 'https://example.com/item1', got: %s", entry.Link)
	}
	if entry.Description != "A humanoid robot & its team." {
		t.Errorf("Expected stripped description, got: %q", entry.Description)
	}
	if entry.Published != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw publish date, got: %s", entry.Published)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>arXiv cs.RO</title>
  <id>urn:uuid:1234567890</id>
  <updated>2023-07-03T12:00:00Z</updated>
  <entry>
    <title>Learning to Grasp</title>
    <link href="https://arxiv.org/abs/2307.00001"/>
    <id>urn:uuid:entry-1</id>
    <published>2023-07-03T10:00:00Z</published>
    <summary>We present a grasping policy.</summary>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
  </entry>
</feed>`

	entries, err := NewParser().Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(entries))
	}

	entry := entries[0]
	if entry.Link != "https://arxiv.org/abs/2307.00001" {
		t.Errorf("Expected link 'https://arxiv.org/abs/2307.00001', got: %s", entry.Link)
	}
	if entry.Description != "We present a grasping policy." {
		t.Errorf("Expected summary as description, got: %q", entry.Description)
	}
	if len(entry.Authors) != 2 {
		t.Errorf("Expected 2 authors, got: %d", len(entry.Authors))
	}
}

func TestParseInvalidFeed(t *testing.T) {
	_, err := NewParser().Run([]byte("invalid xml"))

	if err == nil {
		t.Error("Expected error for invalid XML")
	}
}
